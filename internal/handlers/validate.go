// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"unicode/utf8"

	"portfolio/internal/slug"
)

// Limits on request input that reaches the database.
const (
	maxSlugLen   = 300
	maxSearchLen = 200
)

// validSlug reports whether s could be a stored slug. Anything else is a
// 404 without a database round trip.
func validSlug(s string) bool {
	if s == "" || len(s) > maxSlugLen {
		return false
	}
	return slug.Generate(s) == s
}

// limitSearch truncates a search term to maxSearchLen runes.
func limitSearch(q string) string {
	if utf8.RuneCountInString(q) <= maxSearchLen {
		return q
	}
	runes := []rune(q)
	return string(runes[:maxSearchLen])
}
