// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package loader

import "portfolio/internal/models"

var techColors = map[string]string{
	"Python":                "#3776ab",
	"Django":                "#0c4b33",
	"Django Rest Framework": "#a30000",
	"Flask":                 "#000000",
	"Go":                    "#00add8",
	"PostgreSQL":            "#336791",
	"SQLite":                "#003b57",
	"MySQL":                 "#4479a1",
	"Valkey":                "#dc382d",
	"Redis":                 "#dc382d",
	"JavaScript":            "#f7df1e",
	"HTML":                  "#e34f26",
	"CSS":                   "#1572b6",
	"HTMX":                  "#3366cc",
	"Tailwind CSS":          "#06b6d4",
	"Bootstrap":             "#7952b3",
	"Jinja":                 "#b41717",
	"Git":                   "#f05032",
	"GitHub":                "#181717",
	"Docker":                "#2496ed",
	"JWT":                   "#000000",
	"Click":                 "#ff6b35",
	"Rich":                  "#f7931e",
	"CLI":                   "#4d4d4d",
	"M.V.C.":                "#4d4d4d",
	"P.O.O.":                "#3776ab",
}

var techCategories = map[string]models.TechCategory{
	"Python":                models.TechLanguage,
	"Go":                    models.TechLanguage,
	"JavaScript":            models.TechLanguage,
	"HTML":                  models.TechFrontend,
	"CSS":                   models.TechFrontend,
	"HTMX":                  models.TechFrontend,
	"Tailwind CSS":          models.TechFrontend,
	"Bootstrap":             models.TechFrontend,
	"Django":                models.TechBackend,
	"Django Rest Framework": models.TechBackend,
	"Flask":                 models.TechBackend,
	"JWT":                   models.TechBackend,
	"Click":                 models.TechBackend,
	"Rich":                  models.TechBackend,
	"PostgreSQL":            models.TechDatabase,
	"SQLite":                models.TechDatabase,
	"MySQL":                 models.TechDatabase,
	"Valkey":                models.TechDatabase,
	"Redis":                 models.TechDatabase,
	"Git":                   models.TechTool,
	"GitHub":                models.TechTool,
	"Docker":                models.TechTool,
}

// TechnologyStyle returns the category and color for a technology name.
// Unknown names are tools drawn in the default accent color.
func TechnologyStyle(name string) (models.TechCategory, string) {
	category, ok := techCategories[name]
	if !ok {
		category = models.TechTool
	}
	color, ok := techColors[name]
	if !ok {
		color = defaultColor
	}
	return category, color
}
