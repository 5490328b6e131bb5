package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"actor-portfolio/internal/content"
	"actor-portfolio/internal/images"
	"actor-portfolio/internal/render"
	"actor-portfolio/internal/seo"
	"actor-portfolio/internal/web"

	"github.com/gin-gonic/gin"
)

// EntrySource supplies the news entries.
type EntrySource interface {
	Entries() []content.Entry
}

var navLabels = map[string]string{
	"index": "Home",
	"reel":  "Demo Reel",
}

type PageHandler struct {
	templates *web.Templates
	seo       *seo.Generator
	entries   EntrySource
	images    *images.Resolver
	renderer  *render.Renderer
	maxAge    int
	now       func() time.Time
}

func NewPageHandler(t *web.Templates, gen *seo.Generator, entries EntrySource, img *images.Resolver, r *render.Renderer, maxAge int) *PageHandler {
	return &PageHandler{
		templates: t,
		seo:       gen,
		entries:   entries,
		images:    img,
		renderer:  r,
		maxAge:    maxAge,
		now:       time.Now,
	}
}

func (h *PageHandler) nav(active string) []web.NavLink {
	p := h.seo.Profile
	names := p.PageNames()
	links := make([]web.NavLink, 0, len(names))
	for _, name := range names {
		label, ok := navLabels[name]
		if !ok {
			label = strings.ToUpper(name[:1]) + name[1:]
		}
		links = append(links, web.NavLink{Name: label, Path: p.Pages[name].Path, Active: name == active})
	}
	return links
}

func (h *PageHandler) gallery(page seo.PageConfig) []web.GalleryItem {
	captions := map[string]seo.GalleryImage{}
	for _, g := range h.seo.Profile.Gallery {
		captions[g.Name] = g
	}
	items := make([]web.GalleryItem, 0, len(page.Images))
	for _, name := range page.Images {
		g, ok := captions[name]
		if !ok {
			g = seo.GalleryImage{Caption: name, Title: name}
		}
		items = append(items, web.GalleryItem{
			Caption: g.Caption,
			Title:   g.Title,
			Image:   h.images.Lookup(name),
		})
	}
	return items
}

// view collects everything the named page template needs.
func (h *PageHandler) view(name string, c *gin.Context) web.View {
	p := h.seo.Profile
	page := p.Pages[name]
	v := web.View{
		Profile: p,
		Nav:     h.nav(name),
		Videos:  page.Videos,
		Status:  c.Query("status"),
		Year:    h.now().Year(),
	}
	if len(page.Images) > 0 {
		if hero := h.images.Lookup(page.Images[0]); hero.Fallback != "" {
			v.Hero = &hero
		}
	}

	var opts seo.PageSchemaOptions
	switch name {
	case "index", "news":
		v.Entries = h.entries.Entries()
		if name == "news" {
			for _, e := range v.Entries {
				opts.BlogPosts = append(opts.BlogPosts, h.seo.ArticleSchema(seo.Article{
					Title:         e.Title,
					Description:   e.Summary,
					Image:         entryImage(e),
					URL:           page.Path + "#" + e.Slug,
					DatePublished: e.Date,
				}))
			}
		}
	case "gallery":
		v.Gallery = h.gallery(page)
		for _, item := range v.Gallery {
			if item.Image.Fallback != "" {
				opts.Images = append(opts.Images, p.URL(item.Image.Fallback))
			}
		}
	}

	v.SEO = h.seo.PageData(name, p.URL(page.Path), opts)
	return v
}

func entryImage(e content.Entry) string {
	if e.Image == "" {
		return ""
	}
	return "/static/images/" + e.Image + ".jpg"
}

// Page returns the handler rendering the named page.
func (h *PageHandler) Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := h.templates.Render(name, h.view(name, c))
		if err != nil {
			log.Printf("Error rendering page %s: %v", name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
			return
		}
		h.renderer.Write(c, http.StatusOK, "text/html; charset=utf-8", body, h.maxAge)
	}
}

// Register mounts every configured page that has a template.
func (h *PageHandler) Register(r gin.IRoutes) {
	for _, name := range h.seo.Profile.PageNames() {
		page := h.seo.Profile.Pages[name]
		if page.Path == "" || !h.templates.Has(name) {
			log.Printf("Skipping page %s: no path or template", name)
			continue
		}
		handler := h.Page(name)
		r.GET(page.Path, handler)
		r.HEAD(page.Path, handler)
		if name == "index" && page.Path == "/" {
			r.GET("/index", handler)
		}
	}
}
