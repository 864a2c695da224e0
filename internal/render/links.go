// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/url"
	"slices"
	"strconv"

	"portfolio/internal/store"
)

// Listing links. Every helper drops the page number except PageURL, since
// changing a filter starts over at page one.

// ProjectsURL returns the listing URL for f.
func ProjectsURL(f store.ProjectFilter) string {
	return listURL(f.Values())
}

// ToggleTech adds or removes a technology from the filter.
func ToggleTech(f store.ProjectFilter, slug string) string {
	if HasTech(f, slug) {
		f.Techs = slices.DeleteFunc(slices.Clone(f.Techs), func(s string) bool { return s == slug })
	} else {
		f.Techs = append(slices.Clone(f.Techs), slug)
	}
	return ProjectsURL(f)
}

// SetCategory selects a category, or clears it when already selected.
func SetCategory(f store.ProjectFilter, slug string) string {
	if f.Category == slug {
		f.Category = ""
	} else {
		f.Category = slug
	}
	return ProjectsURL(f)
}

// SetSort changes the ordering.
func SetSort(f store.ProjectFilter, sort string) string {
	f.Sort = store.ParseSort(sort)
	return ProjectsURL(f)
}

// PageURL links to page n of the current listing.
func PageURL(f store.ProjectFilter, n int) string {
	v := f.Values()
	if n > 1 {
		v.Set("page", strconv.Itoa(n))
	}
	return listURL(v)
}

// HasTech reports whether slug is part of the filter.
func HasTech(f store.ProjectFilter, slug string) bool {
	return slices.Contains(f.Techs, slug)
}

func listURL(v url.Values) string {
	if len(v) == 0 {
		return "/projects"
	}
	return "/projects?" + v.Encode()
}
