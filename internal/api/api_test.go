package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"actor-portfolio/internal/content"
	"actor-portfolio/internal/images"
	"actor-portfolio/internal/mailer"
	"actor-portfolio/internal/media"
	"actor-portfolio/internal/models"
	"actor-portfolio/internal/render"
	"actor-portfolio/internal/seo"
	"actor-portfolio/internal/sitemap"
	"actor-portfolio/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	mu        sync.Mutex
	inquiries []*models.ContactInquiry
	statuses  map[string]string
	createErr error
}

func (s *fakeStore) Create(_ context.Context, inquiry *models.ContactInquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	inquiry.ID = uint(len(s.inquiries) + 1)
	s.inquiries = append(s.inquiries, inquiry)
	return nil
}

func (s *fakeStore) UpdateEmailStatus(_ context.Context, id, status, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statuses == nil {
		s.statuses = map[string]string{}
	}
	s.statuses[id] = status
	return nil
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []mailer.Job
	full bool
}

func (q *fakeQueue) Submit(job mailer.Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full {
		return false
	}
	q.jobs = append(q.jobs, job)
	return true
}

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

type staticEntries []content.Entry

func (e staticEntries) Entries() []content.Entry { return e }

type testSite struct {
	engine   *gin.Engine
	videoDir string
	reel     []byte
	store    *fakeStore
	queue    *fakeQueue
}

type siteOption func(*testSite, *Handlers)

func withLimiter(l RateLimiter) siteOption {
	return func(s *testSite, h *Handlers) {
		h.Contact = NewContactHandler(s.store, s.queue, l)
	}
}

func newTestSite(t *testing.T, opts ...siteOption) *testSite {
	t.Helper()

	static := t.TempDir()
	videoDir := filepath.Join(static, "videos")
	require.NoError(t, os.MkdirAll(videoDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(static, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "images", "headshot-1.jpg"), []byte("jpg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "secret.mp4"), []byte("secret"), 0o644))

	reel := make([]byte, 64*1024+17)
	for i := range reel {
		reel[i] = byte((i * 7) % 256)
	}
	require.NoError(t, os.WriteFile(filepath.Join(videoDir, "demo-reel.mp4"), reel, 0o644))

	profile, err := seo.LoadProfile("")
	require.NoError(t, err)
	tpl, err := web.Load()
	require.NoError(t, err)

	gen := seo.NewGenerator(profile)
	resolver := images.NewResolver(static, "/static")
	renderer := render.New(1024)
	entries := staticEntries{
		{Slug: "f1-the-movie", Title: "Cardistry Consultant on F1 The Movie", Date: "2025-09-01", HTML: "<p>F1</p>"},
		{Slug: "espn-fuse", Title: "ESPN+ FUSE Sketch Comedy Series Launch", Date: "2019-08-01", HTML: "<p>FUSE</p>"},
	}

	site := &testSite{videoDir: videoDir, reel: reel, store: &fakeStore{}, queue: &fakeQueue{}}
	h := &Handlers{
		Video:    NewVideoHandler(media.NewStreamer(videoDir, media.WithChunkSize(4096), media.WithMaxAge(3600))),
		Pages:    NewPageHandler(tpl, gen, entries, resolver, renderer, 300),
		Contact:  NewContactHandler(site.store, site.queue, nil),
		Sitemaps: NewSitemapHandler(sitemap.NewBuilder(profile, resolver), entries, renderer),
	}
	for _, opt := range opts {
		opt(site, h)
	}

	site.engine = gin.New()
	h.Register(site.engine, static)
	return site
}

var errDB = errors.New("database is locked")
