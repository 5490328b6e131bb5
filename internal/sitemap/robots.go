package sitemap

import (
	"fmt"
	"strings"
)

var socialBots = []string{
	"facebookexternalhit",
	"Twitterbot",
	"LinkedInBot",
	"PinterestBot",
	"InstagramBot",
	"TikTokBot",
}

var disallowed = []string{
	"/admin/", "/private/", "/.git/", "/app/", "/.env",
	"/config/", "/logs/", "/tmp/", "/test/", "/tests/",
}

var staticAllowed = []string{
	"/static/css/", "/static/js/", "/static/images/",
	"/static/videos/", "/static/favicon/", "/static/fonts/",
}

// Robots renders robots.txt pointing crawlers at every sitemap.
func (b *Builder) Robots() string {
	p := b.Profile
	var sb strings.Builder

	sb.WriteString("User-agent: *\nAllow: /\n\n")
	sb.WriteString("# Primary Sitemap\n")
	fmt.Fprintf(&sb, "Sitemap: %s\n\n", p.URL("/sitemap.xml"))
	sb.WriteString("# Specialized Sitemaps\n")
	for _, name := range []string{"news-sitemap.xml", "image-sitemap.xml", "video-sitemap.xml"} {
		fmt.Fprintf(&sb, "Sitemap: %s\n", p.URL("/"+name))
	}

	sb.WriteString("\n# Search Engine Specific Directives\n")
	for _, bot := range []string{"Googlebot", "Bingbot"} {
		fmt.Fprintf(&sb, "User-agent: %s\nAllow: /\nCrawl-delay: 1\n\n", bot)
	}
	for _, bot := range socialBots {
		fmt.Fprintf(&sb, "User-agent: %s\nAllow: /\n\n", bot)
	}

	sb.WriteString("# Block administrative and system directories\n")
	for _, path := range disallowed {
		fmt.Fprintf(&sb, "Disallow: %s\n", path)
	}

	sb.WriteString("\n# Allow static assets and important resources\n")
	for _, path := range staticAllowed {
		fmt.Fprintf(&sb, "Allow: %s\n", path)
	}

	sb.WriteString("\n# Performance and courtesy settings\n")
	sb.WriteString("Crawl-delay: 1\nRequest-rate: 1/1s\n")
	fmt.Fprintf(&sb, "Host: %s\n", p.Host())
	return sb.String()
}
