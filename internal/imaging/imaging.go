// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging re-encodes uploaded project images. Images wider than
// the configured maximum are scaled down with CatmullRom, any alpha is
// flattened onto white, and the result is recompressed as JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxPixels caps decoded image size to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	MaxPixels = 100_000_000

	// DefaultMaxWidth and DefaultQuality match the upload settings of the site.
	DefaultMaxWidth = 1920
	DefaultQuality  = 85
)

// Result is an optimized JPEG with its final dimensions.
type Result struct {
	Data   []byte
	Width  int
	Height int
}

// Optimize decodes data, caps its width at maxWidth while preserving the
// aspect ratio, and encodes it as JPEG at the given quality. Images that
// already fit are re-encoded at their original size, never upscaled.
func Optimize(data []byte, maxWidth, quality int) (*Result, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxWidth {
		height = max(1, int(float64(height)*float64(maxWidth)/float64(width)))
		width = maxWidth
	}

	// JPEG has no alpha channel, so paint a white canvas first.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &Result{Data: buf.Bytes(), Width: width, Height: height}, nil
}

// Upload is a file ready to be written to media storage.
type Upload struct {
	Data        []byte
	ContentType string
	Ext         string
	Optimized   bool
}

// Optimizer applies Optimize with fixed settings and never fails.
type Optimizer struct {
	MaxWidth int
	Quality  int
}

// NewOptimizer returns an Optimizer with the given settings.
func NewOptimizer(maxWidth, quality int) *Optimizer {
	return &Optimizer{MaxWidth: maxWidth, Quality: quality}
}

// Prepare optimizes data. When optimization fails the original bytes are
// returned unchanged with a sniffed content type, and the failure is logged.
func (o *Optimizer) Prepare(data []byte, filename string) Upload {
	res, err := Optimize(data, o.MaxWidth, o.Quality)
	if err != nil {
		slog.Warn("image optimization failed, storing original", "error", err, "file", filename)
		contentType := http.DetectContentType(data)
		ext := strings.ToLower(filepath.Ext(filename))
		if ext == "" {
			ext = extensionFromType(contentType)
		}
		return Upload{Data: data, ContentType: contentType, Ext: ext}
	}
	slog.Debug("image optimized",
		"file", filename,
		"before", len(data),
		"after", len(res.Data),
		"width", res.Width,
		"height", res.Height,
	)
	return Upload{Data: res.Data, ContentType: "image/jpeg", Ext: ".jpg", Optimized: true}
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
