package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPage = `<!DOCTYPE html><html><head>
<title>Jake Crossman - Professional Actor</title>
<meta name="description" content="Professional Actor Jake Crossman brings dynamic energy to every role. ESPN+ star, TikTok influencer with 1M+ followers. Based in LA.">
<link rel="canonical" href="https://jakecrossman.com/">
<meta property="og:title" content="t"><meta property="og:description" content="d"><meta property="og:image" content="i">
<meta name="twitter:card" content="summary_large_image"><meta name="twitter:title" content="t">
<script type="application/ld+json">{"@context":"https://schema.org"}</script>
</head><body><h1>Jake</h1><img src="a.jpg" alt="headshot"></body></html>`

const badPage = `<html><head><title>` + "A title that is far too long to be shown in full in any search result listing" + `</title>
<meta name="description" content="short">
<script type="application/ld+json">{broken</script>
</head><body><h1>a</h1><h1>b</h1><img src="a.jpg"></body></html>`

func TestCheckPage_Good(t *testing.T) {
	r := &Report{}
	CheckPage(r, "/", http.StatusOK, []byte(goodPage))
	assert.Empty(t, r.Failed)
	assert.Empty(t, r.Warnings)
	assert.Len(t, r.Passed, 8)
}

func TestCheckPage_Bad(t *testing.T) {
	r := &Report{}
	CheckPage(r, "/x", http.StatusOK, []byte(badPage))

	joined := strings.Join(append(r.Failed, r.Warnings...), "\n")
	assert.Contains(t, joined, "/x: Title too long")
	assert.Contains(t, joined, "/x: Meta description too short (5 chars)")
	assert.Contains(t, joined, "/x: Multiple H1 tags (2)")
	assert.Contains(t, joined, "/x: Missing canonical URL")
	assert.Contains(t, joined, "/x: Missing Open Graph tags: og:title, og:description, og:image")
	assert.Contains(t, joined, "/x: Missing Twitter Card tags")
	assert.Contains(t, joined, "/x: Invalid JSON-LD schemas")
	assert.Contains(t, joined, "/x: 1/1 images missing alt text")
	assert.False(t, r.OK())

	r = &Report{}
	CheckPage(r, "/gone", http.StatusNotFound, nil)
	assert.Equal(t, []string{"/gone: HTTP 404"}, r.Failed)
}

func TestCheckSitemapAndRobots(t *testing.T) {
	r := &Report{}
	CheckSitemap(r, "/sitemap.xml", 200, []byte(`<?xml version="1.0"?><urlset><url><loc>a</loc></url><url><loc>b</loc></url></urlset>`))
	CheckSitemap(r, "/bad.xml", 200, []byte(`<urlset><url>`))
	CheckSitemap(r, "/feed.xml", 200, []byte(`<rss></rss>`))
	CheckRobots(r, 200, []byte("User-agent: *\nSitemap: https://x/sitemap.xml\n"))

	assert.Equal(t, []string{"/sitemap.xml: Valid XML with 2 URLs", "/robots.txt: Accessible and references sitemaps"}, r.Passed)
	assert.Equal(t, []string{"/bad.xml: Invalid XML", `/feed.xml: Unexpected root element "rss"`}, r.Failed)
}

func TestAuditor_Run(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(goodPage))
	})
	for _, path := range DefaultSitemaps {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(`<urlset><url><loc>x</loc></url></urlset>`))
		})
	}
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Sitemap: x"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	report := NewAuditor(srv.URL+"/", 5*time.Second).Run(context.Background(), []string{"/", "/about"})
	require.Empty(t, report.Failed)
	assert.Len(t, report.Passed, 2*8+len(DefaultSitemaps)+1)
}
