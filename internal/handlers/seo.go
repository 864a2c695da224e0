// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// staticPages are listed in the sitemap ahead of the projects.
var staticPages = []string{"/", "/about", "/skills", "/projects", "/contact"}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap lists the static pages and every published project.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := p.projects.SitemapEntries()
	if err != nil {
		serverError(w, r, "sitemap entries failed", err)
		return
	}

	base := strings.TrimRight(p.opts.SiteURL, "/")
	set := sitemapURLSet{XMLNS: sitemapNS}
	for _, path := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + path, ChangeFreq: "weekly", Priority: "0.9"})
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/projects/" + e.Slug,
			LastMod:    e.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		serverError(w, r, "encode sitemap failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	w.Write(out)
}

// Robots allows all crawlers and points them at the sitemap.
func (p *Public) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(p.opts.SiteURL, "/"))
}
