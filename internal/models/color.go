// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// Default brand colors.
const (
	DefaultPrimaryColor   = "#ff6b35"
	DefaultSecondaryColor = "#f7931e"
)

// ValidHexColor reports whether s has the form #RRGGBB.
func ValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// CheckHexColor returns an error naming the field if s is not a valid hex color.
func CheckHexColor(field, s string) error {
	if !ValidHexColor(s) {
		return fmt.Errorf("%s: %q is not a valid hex color (#RRGGBB)", field, s)
	}
	return nil
}
