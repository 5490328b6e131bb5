package sitemap

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actor-portfolio/internal/content"
	"actor-portfolio/internal/images"
	"actor-portfolio/internal/seo"
)

func testBuilder(t *testing.T, imageFiles ...string) *Builder {
	t.Helper()
	p, err := seo.LoadProfile("")
	require.NoError(t, err)

	static := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(static, "images"), 0o755))
	for _, f := range imageFiles {
		require.NoError(t, os.WriteFile(filepath.Join(static, "images", f), []byte("x"), 0o644))
	}

	b := NewBuilder(p, images.NewResolver(static, "/static"))
	b.Now = func() time.Time { return time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC) }
	return b
}

type parsedSet struct {
	URLs []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
		Images  []struct {
			Loc         string `xml:"loc"`
			Caption     string `xml:"caption"`
			GeoLocation string `xml:"geo_location"`
		} `xml:"image"`
		Videos []struct {
			ContentLoc string   `xml:"content_loc"`
			Tags       []string `xml:"tag"`
		} `xml:"video"`
		News *struct {
			Title string `xml:"title"`
		} `xml:"news"`
	} `xml:"url"`
}

func parse(t *testing.T, data []byte) parsedSet {
	t.Helper()
	var set parsedSet
	require.NoError(t, xml.Unmarshal(data, &set))
	return set
}

func TestSitemap(t *testing.T) {
	b := testBuilder(t, "headshot-1.webp", "headshot-1.jpg", "headshot-2.jpg", "demo-reel-thumbnail.png")

	data, err := b.Sitemap()
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, text, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, text, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.Contains(t, text, "<image:image>")

	set := parse(t, data)
	require.Len(t, set.URLs, 7)
	assert.Equal(t, "https://jakecrossman.com/", set.URLs[0].Loc)
	assert.Equal(t, "2025-04-02", set.URLs[0].LastMod)

	require.Len(t, set.URLs[0].Images, 2)
	assert.Equal(t, "https://jakecrossman.com/static/images/headshot-1.webp", set.URLs[0].Images[0].Loc)
	assert.Equal(t, "https://jakecrossman.com/static/images/headshot-2.jpg", set.URLs[0].Images[1].Loc)

	reel := set.URLs[2]
	assert.Equal(t, "https://jakecrossman.com/reel", reel.Loc)
	require.Len(t, reel.Images, 1)
	assert.Equal(t, "https://jakecrossman.com/static/images/demo-reel-thumbnail.png", reel.Images[0].Loc)
	require.Len(t, reel.Videos, 1)
	assert.Equal(t, "https://jakecrossman.com/video/demo-reel.mp4", reel.Videos[0].ContentLoc)
	assert.Contains(t, reel.Videos[0].Tags, "demo reel")
}

func TestNewsSitemap(t *testing.T) {
	b := testBuilder(t)
	entries := []content.Entry{
		{Slug: "f1-the-movie", Title: "Cardistry Consultant on F1 The Movie", Date: "2025-09-01"},
		{Slug: "draft", Title: "Undated"},
	}

	data, err := b.News(entries)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<news:name>Jake Crossman - Professional Actor</news:name>")

	set := parse(t, data)
	require.Len(t, set.URLs, 1)
	assert.Equal(t, "https://jakecrossman.com/news#f1-the-movie", set.URLs[0].Loc)
	require.NotNil(t, set.URLs[0].News)
	assert.Equal(t, "Cardistry Consultant on F1 The Movie", set.URLs[0].News.Title)
}

func TestImageSitemap(t *testing.T) {
	b := testBuilder(t, "headshot-4.webp")

	data, err := b.ImageSitemap()
	require.NoError(t, err)
	set := parse(t, data)

	require.Len(t, set.URLs, 3)
	assert.Equal(t, "https://jakecrossman.com/", set.URLs[0].Loc)
	assert.Len(t, set.URLs[0].Images, 3)
	assert.Equal(t, "https://jakecrossman.com/gallery", set.URLs[1].Loc)
	assert.Len(t, set.URLs[1].Images, 8)
	assert.Equal(t, "https://jakecrossman.com/reel", set.URLs[2].Loc)

	first := set.URLs[1].Images[0]
	assert.Equal(t, "https://jakecrossman.com/static/images/headshot-4.webp", first.Loc)
	assert.Equal(t, "Los Angeles, CA, USA", first.GeoLocation)

	espn := set.URLs[1].Images[5]
	assert.Equal(t, "https://jakecrossman.com/static/images/espn-fuse-highlight.jpg", espn.Loc)
	assert.Empty(t, espn.GeoLocation)
}

func TestVideoSitemap(t *testing.T) {
	data, err := testBuilder(t).VideoSitemap()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<video:uploader info="https://jakecrossman.com">Jacob Crossman</video:uploader>`)
	assert.Contains(t, string(data), "<video:family_friendly>yes</video:family_friendly>")
	assert.Contains(t, string(data), "<video:rating>5.0</video:rating>")

	set := parse(t, data)
	require.Len(t, set.URLs, 1)
	assert.Equal(t, "https://jakecrossman.com/reel", set.URLs[0].Loc)
}

func TestCaption(t *testing.T) {
	b := testBuilder(t)
	assert.Equal(t, "Jake Crossman Professional Headshot 1", b.caption("headshot-1"))
	assert.Equal(t, "Jake Crossman Professional Headshot - Photo 9", b.caption("headshot-9"))
	assert.Equal(t, "Jake Crossman Red Carpet Production Photo", b.caption("red-carpet-highlight"))
	assert.Equal(t, "Jake Crossman Press Kit", b.caption("press-kit"))
}

func TestRobots(t *testing.T) {
	text := testBuilder(t).Robots()
	assert.True(t, strings.HasPrefix(text, "User-agent: *\nAllow: /\n"))
	assert.Contains(t, text, "Sitemap: https://jakecrossman.com/sitemap.xml\n")
	assert.Contains(t, text, "Sitemap: https://jakecrossman.com/video-sitemap.xml\n")
	assert.Contains(t, text, "User-agent: Googlebot\nAllow: /\nCrawl-delay: 1\n")
	assert.Contains(t, text, "Disallow: /.env\n")
	assert.Contains(t, text, "Allow: /static/videos/\n")
	assert.Contains(t, text, "Host: jakecrossman.com\n")
}
