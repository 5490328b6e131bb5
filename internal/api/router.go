package api

import (
	"net/http"
	"os"
	"strings"

	"actor-portfolio/internal/media"

	"github.com/gin-gonic/gin"
)

const msgVideoNotFound = "Video not found"

type Handlers struct {
	Video    *VideoHandler
	Pages    *PageHandler
	Contact  *ContactHandler
	Sitemaps *SitemapHandler
}

// assetFS serves the static directory minus media files, which only go out
// through /video.
type assetFS struct {
	http.FileSystem
}

func (fs assetFS) Open(name string) (http.File, error) {
	if _, ok := media.ContentType(name); ok {
		return nil, os.ErrNotExist
	}
	return fs.FileSystem.Open(name)
}

// notFound answers unmatched video paths the same way as a missing video.
func notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/video/") {
		c.JSON(http.StatusNotFound, gin.H{"error": msgVideoNotFound})
		return
	}
	c.String(http.StatusNotFound, "404 page not found")
}

// Register mounts every route on r. staticDir is served under /static when set.
func (h *Handlers) Register(r *gin.Engine, staticDir string) {
	r.NoRoute(notFound)
	if staticDir != "" {
		r.StaticFS("/static", assetFS{gin.Dir(staticDir, false)})
	}

	h.Pages.Register(r)
	r.POST("/contact", h.Contact.Submit)

	// Media Routes
	r.GET("/video/:filename", h.Video.ServeVideo)
	r.HEAD("/video/:filename", h.Video.ServeVideo)
	r.GET("/api/videos", h.Video.ListVideos)

	// SEO Routes
	r.GET("/sitemap.xml", h.Sitemaps.Sitemap)
	r.GET("/news-sitemap.xml", h.Sitemaps.NewsSitemap)
	r.GET("/image-sitemap.xml", h.Sitemaps.ImageSitemap)
	r.GET("/video-sitemap.xml", h.Sitemaps.VideoSitemap)
	r.GET("/robots.txt", h.Sitemaps.Robots)
}
