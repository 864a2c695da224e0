// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidSlug(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want bool
	}{
		{"simple", "portfolio-site", true},
		{"with suffix", "api-2", true},
		{"empty", "", false},
		{"uppercase", "Portfolio", false},
		{"accents", "café", false},
		{"traversal", "..", false},
		{"sql", "x' OR 1=1", false},
		{"leading hyphen", "-x", false},
		{"too long", strings.Repeat("a", 301), false},
		{"max length", strings.Repeat("a", 300), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validSlug(tt.slug); got != tt.want {
				t.Errorf("validSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestLimitSearch(t *testing.T) {
	if got := limitSearch("go api"); got != "go api" {
		t.Errorf("short term changed: %q", got)
	}
	long := strings.Repeat("é", 250)
	got := limitSearch(long)
	if n := utf8.RuneCountInString(got); n != maxSearchLen {
		t.Errorf("rune count: got %d, want %d", n, maxSearchLen)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation must not split runes")
	}
}
