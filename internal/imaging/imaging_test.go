// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// pngBytes encodes a w×h image. The left half is opaque red, the right half
// fully transparent.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// pngHeaderOnly returns a PNG signature plus an IHDR chunk announcing the
// given dimensions. DecodeConfig accepts it; a full decode would not.
func pngHeaderOnly(w, h uint32) []byte {
	var ihdr bytes.Buffer
	ihdr.WriteString("IHDR")
	binary.Write(&ihdr, binary.BigEndian, w)
	binary.Write(&ihdr, binary.BigEndian, h)
	ihdr.Write([]byte{8, 6, 0, 0, 0}) // 8-bit RGBA

	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&out, binary.BigEndian, uint32(ihdr.Len()-4))
	out.Write(ihdr.Bytes())
	binary.Write(&out, binary.BigEndian, crc32.ChecksumIEEE(ihdr.Bytes()))
	return out.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	return img
}

func TestOptimize_ScalesDownWideImages(t *testing.T) {
	res, err := Optimize(pngBytes(t, 400, 100), 200, 85)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if res.Width != 200 || res.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 200x50", res.Width, res.Height)
	}
	img := decodeJPEG(t, res.Data)
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("decoded bounds: got %v", b)
	}
}

func TestOptimize_NeverUpscales(t *testing.T) {
	res, err := Optimize(pngBytes(t, 120, 80), 1920, 85)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if res.Width != 120 || res.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 120x80", res.Width, res.Height)
	}
}

func TestOptimize_FlattensAlphaOntoWhite(t *testing.T) {
	res, err := Optimize(pngBytes(t, 100, 100), 1920, 95)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	img := decodeJPEG(t, res.Data)

	r, g, b, _ := img.At(90, 50).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("transparent area should be white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(10, 50).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
		t.Errorf("opaque area should stay red, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestOptimize_InvalidSettingsFallBackToDefaults(t *testing.T) {
	res, err := Optimize(pngBytes(t, 50, 20), 0, 0)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if res.Width != 50 {
		t.Errorf("width: got %d, want 50", res.Width)
	}
}

func TestOptimize_RejectsPixelBombs(t *testing.T) {
	_, err := Optimize(pngHeaderOnly(20000, 20000), 1920, 85)
	if err == nil {
		t.Fatal("expected error for a 400M pixel image")
	}
}

func TestOptimize_RejectsNonImages(t *testing.T) {
	if _, err := Optimize([]byte("definitely not an image"), 1920, 85); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOptimizer_Prepare(t *testing.T) {
	opt := NewOptimizer(64, 80)

	t.Run("optimized upload is a JPEG", func(t *testing.T) {
		up := opt.Prepare(pngBytes(t, 128, 64), "Screenshot.PNG")
		if !up.Optimized {
			t.Fatal("expected optimized upload")
		}
		if up.ContentType != "image/jpeg" || up.Ext != ".jpg" {
			t.Errorf("got %q %q", up.ContentType, up.Ext)
		}
		if b := decodeJPEG(t, up.Data).Bounds(); b.Dx() != 64 {
			t.Errorf("width: got %d, want 64", b.Dx())
		}
	})

	t.Run("failure keeps the original bytes", func(t *testing.T) {
		raw := []byte("%PDF-1.4 not an image")
		up := opt.Prepare(raw, "brief.pdf")
		if up.Optimized {
			t.Fatal("should not report optimized")
		}
		if !bytes.Equal(up.Data, raw) {
			t.Error("original bytes should be returned unchanged")
		}
		if up.Ext != ".pdf" {
			t.Errorf("ext: got %q, want .pdf", up.Ext)
		}
		if up.ContentType != "application/pdf" {
			t.Errorf("content type: got %q", up.ContentType)
		}
	})

	t.Run("missing extension comes from the sniffed type", func(t *testing.T) {
		up := opt.Prepare(pngHeaderOnly(20000, 20000), "upload")
		if up.Optimized {
			t.Fatal("bomb should not be optimized")
		}
		if up.Ext != ".png" {
			t.Errorf("ext: got %q, want .png", up.Ext)
		}
	})
}
