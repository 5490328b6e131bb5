package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"actor-portfolio/internal/api"
	"actor-portfolio/internal/config"
	"actor-portfolio/internal/content"
	"actor-portfolio/internal/database"
	"actor-portfolio/internal/images"
	"actor-portfolio/internal/limiter"
	"actor-portfolio/internal/mailer"
	"actor-portfolio/internal/media"
	"actor-portfolio/internal/render"
	"actor-portfolio/internal/seo"
	"actor-portfolio/internal/sitemap"
	"actor-portfolio/internal/web"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	db := database.InitGorm(cfg)
	store := database.NewInquiryStore(db)

	profile, err := seo.LoadProfile(cfg.SiteProfile)
	if err != nil {
		log.Fatalf("Failed to load site profile: %v", err)
	}
	if cfg.BaseURL != "" {
		profile.SiteURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	templates, err := web.Load()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entries := content.NewStore(cfg.ContentDir)
	if err := entries.Reload(); err != nil {
		log.Printf("Warning: failed to load content from %s: %v", cfg.ContentDir, err)
	}
	go func() {
		if err := entries.Watch(ctx); err != nil {
			log.Printf("Warning: content reload disabled for %s: %v", cfg.ContentDir, err)
		}
	}()

	if !cfg.MailConfigured() {
		log.Println("Warning: SMTP settings incomplete, contact emails will be marked failed")
	}
	mailPool := mailer.NewPool(mailer.NewSMTPSender(cfg), cfg.MailWorkers, cfg.MailQueue, api.RecordEmailResult(store))

	streamer := media.NewStreamer(cfg.MediaDir,
		media.WithChunkSize(cfg.VideoChunkSize),
		media.WithMaxAge(cfg.VideoMaxAge),
	)
	if names, err := streamer.List(); err == nil {
		log.Printf("Serving %d video(s) from %s", len(names), cfg.MediaDir)
	}

	gen := seo.NewGenerator(profile)
	resolver := images.NewResolver(cfg.StaticDir, "/static")
	renderer := render.New(cfg.CompressMinSize)

	handlers := &api.Handlers{
		Video:    api.NewVideoHandler(streamer),
		Pages:    api.NewPageHandler(templates, gen, entries, resolver, renderer, cfg.PageMaxAge),
		Contact:  api.NewContactHandler(store, mailPool, limiter.NewPerHour(cfg.ContactPerHour, cfg.ContactBurst)),
		Sitemaps: api.NewSitemapHandler(sitemap.NewBuilder(profile, resolver), entries, renderer),
	}

	r := gin.Default()
	handlers.Register(r, cfg.StaticDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	mailPool.Close()
	log.Println("Server stopped")
}
