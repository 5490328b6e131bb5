package api

import (
	"log"
	"net/http"

	"actor-portfolio/internal/render"
	"actor-portfolio/internal/sitemap"

	"github.com/gin-gonic/gin"
)

const (
	sitemapMaxAge      = 3600
	newsSitemapMaxAge  = 1800
	imageSitemapMaxAge = 7200
	videoSitemapMaxAge = 3600
	robotsMaxAge       = 86400
)

type SitemapHandler struct {
	builder  *sitemap.Builder
	entries  EntrySource
	renderer *render.Renderer
}

func NewSitemapHandler(b *sitemap.Builder, entries EntrySource, r *render.Renderer) *SitemapHandler {
	return &SitemapHandler{builder: b, entries: entries, renderer: r}
}

func (h *SitemapHandler) xml(c *gin.Context, name string, maxAge int, build func() ([]byte, error)) {
	body, err := build()
	if err != nil {
		log.Printf("Error building %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build " + name})
		return
	}
	h.renderer.Write(c, http.StatusOK, "application/xml", body, maxAge)
}

func (h *SitemapHandler) Sitemap(c *gin.Context) {
	h.xml(c, "sitemap", sitemapMaxAge, h.builder.Sitemap)
}

func (h *SitemapHandler) NewsSitemap(c *gin.Context) {
	h.xml(c, "news sitemap", newsSitemapMaxAge, func() ([]byte, error) {
		return h.builder.News(h.entries.Entries())
	})
}

func (h *SitemapHandler) ImageSitemap(c *gin.Context) {
	h.xml(c, "image sitemap", imageSitemapMaxAge, h.builder.ImageSitemap)
}

func (h *SitemapHandler) VideoSitemap(c *gin.Context) {
	h.xml(c, "video sitemap", videoSitemapMaxAge, h.builder.VideoSitemap)
}

func (h *SitemapHandler) Robots(c *gin.Context) {
	h.renderer.Write(c, http.StatusOK, "text/plain", []byte(h.builder.Robots()), robotsMaxAge)
}
