package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"actor-portfolio/internal/content"
	"actor-portfolio/internal/images"
	"actor-portfolio/internal/seo"
)

//go:embed templates/*.html
var files embed.FS

type NavLink struct {
	Name   string
	Path   string
	Active bool
}

type GalleryItem struct {
	Caption string
	Title   string
	Image   images.Image
}

// View is the data every page template receives.
type View struct {
	SEO     seo.PageData
	Profile *seo.Profile
	Nav     []NavLink
	Hero    *images.Image
	Entries []content.Entry
	Gallery []GalleryItem
	Videos  []string
	Status  string
	Year    int
}

type Templates struct {
	t *template.Template
}

func Load() (*Templates, error) {
	t, err := template.New("site").ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{t: t}, nil
}

func (t *Templates) Has(name string) bool {
	return t.t.Lookup(name) != nil
}

// Render executes the named page into memory so a failed render never
// leaves a half-written response.
func (t *Templates) Render(name string, v View) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.t.ExecuteTemplate(&buf, name, v); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
