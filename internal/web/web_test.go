package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actor-portfolio/internal/content"
	"actor-portfolio/internal/images"
	"actor-portfolio/internal/seo"
)

func TestRenderPages(t *testing.T) {
	tpl, err := Load()
	require.NoError(t, err)

	profile, err := seo.LoadProfile("")
	require.NoError(t, err)
	gen := seo.NewGenerator(profile)

	hero := images.Image{
		Name:     "headshot-1",
		Formats:  map[string]string{"webp": "/static/images/headshot-1.webp", "jpg": "/static/images/headshot-1.jpg"},
		Fallback: "/static/images/headshot-1.jpg",
	}

	for _, name := range profile.PageNames() {
		require.True(t, tpl.Has(name), name)

		v := View{
			SEO:     gen.PageData(name, "", seo.PageSchemaOptions{}),
			Profile: profile,
			Nav:     []NavLink{{Name: "Home", Path: "/", Active: name == "index"}},
			Hero:    &hero,
			Entries: []content.Entry{{Slug: "premiere", Title: "Premiere <night>", Date: "2025-01-01", HTML: "<p>Body</p>"}},
			Gallery: []GalleryItem{{Caption: "Headshot", Title: "Headshot", Image: hero}},
			Videos:  []string{"demo-reel.mp4"},
			Year:    2025,
		}
		out, err := tpl.Render(name, v)
		require.NoError(t, err, name)
		html := string(out)

		assert.Equal(t, 1, strings.Count(html, "<h1"), name)
		assert.Contains(t, html, "<title>"+escapeTitle(v.SEO.Meta.Title)+"</title>", name)
		assert.Contains(t, html, `<link rel="canonical" href="`+v.SEO.Meta.Canonical+`">`, name)
		assert.Contains(t, html, `<meta property="og:title"`, name)
		assert.Contains(t, html, `<meta name="twitter:card" content="summary_large_image">`, name)
		assert.Contains(t, html, `<script type="application/ld+json">{"@context":"https://schema.org"`, name)
	}
}

func TestRenderNewsAndContact(t *testing.T) {
	tpl, err := Load()
	require.NoError(t, err)
	profile, err := seo.LoadProfile("")
	require.NoError(t, err)

	out, err := tpl.Render("news", View{
		Profile: profile,
		Entries: []content.Entry{{Slug: "premiere", Title: "Premiere", HTML: "<p><em>Now streaming</em></p>"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), `<article id="premiere">`)
	assert.Contains(t, string(out), "<p><em>Now streaming</em></p>")

	out, err = tpl.Render("contact", View{Profile: profile, Status: "sent"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Thank you for your message!")

	_, err = tpl.Render("missing", View{Profile: profile})
	assert.Error(t, err)
}

// escapeTitle mirrors html/template escaping for the characters the titles use.
func escapeTitle(s string) string {
	return strings.NewReplacer("&", "&amp;", "'", "&#39;").Replace(s)
}
