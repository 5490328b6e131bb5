package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"golang.org/x/net/html"
)

const (
	MaxTitleLength       = 60
	MinDescriptionLength = 120
	MaxDescriptionLength = 160
)

var DefaultPages = []string{"/", "/about", "/reel", "/resume", "/gallery", "/news", "/contact"}

var DefaultSitemaps = []string{"/sitemap.xml", "/news-sitemap.xml", "/image-sitemap.xml", "/video-sitemap.xml"}

type Report struct {
	Passed   []string
	Warnings []string
	Failed   []string
}

func (r *Report) pass(format string, args ...interface{}) {
	r.Passed = append(r.Passed, fmt.Sprintf(format, args...))
}

func (r *Report) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) fail(format string, args ...interface{}) {
	r.Failed = append(r.Failed, fmt.Sprintf(format, args...))
}

func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// page is what the checks read from a parsed document.
type page struct {
	title       string
	hasTitle    bool
	description *string
	canonical   string
	h1          int
	og          map[string]string
	twitter     map[string]string
	jsonLD      []string
	images      int
	missingAlt  int
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func parsePage(body []byte) (*page, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	p := &page{og: map[string]string{}, twitter: map[string]string{}}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if !p.hasTitle {
					p.title, p.hasTitle = text(n), true
				}
			case "h1":
				p.h1++
			case "meta":
				content, _ := attr(n, "content")
				name, _ := attr(n, "name")
				prop, _ := attr(n, "property")
				switch {
				case name == "description":
					p.description = &content
				case strings.HasPrefix(prop, "og:"):
					p.og[prop] = content
				case strings.HasPrefix(name, "twitter:"):
					p.twitter[name] = content
				}
			case "link":
				if rel, _ := attr(n, "rel"); rel == "canonical" {
					p.canonical, _ = attr(n, "href")
				}
			case "script":
				if typ, _ := attr(n, "type"); typ == "application/ld+json" {
					p.jsonLD = append(p.jsonLD, text(n))
				}
			case "img":
				p.images++
				if alt, ok := attr(n, "alt"); !ok || strings.TrimSpace(alt) == "" {
					p.missingAlt++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return p, nil
}

// CheckPage audits one rendered page.
func CheckPage(r *Report, path string, status int, body []byte) {
	if status != 200 {
		r.fail("%s: HTTP %d", path, status)
		return
	}
	p, err := parsePage(body)
	if err != nil {
		r.fail("%s: unparseable HTML: %v", path, err)
		return
	}

	switch n := len([]rune(p.title)); {
	case !p.hasTitle || n == 0:
		r.fail("%s: Missing or empty title", path)
	case n <= MaxTitleLength:
		r.pass("%s: Title length OK (%d chars)", path, n)
	default:
		r.warn("%s: Title too long (%d chars)", path, n)
	}

	if p.description == nil {
		r.fail("%s: Missing meta description", path)
	} else {
		switch n := len([]rune(*p.description)); {
		case n >= MinDescriptionLength && n <= MaxDescriptionLength:
			r.pass("%s: Meta description length OK (%d chars)", path, n)
		case n < MinDescriptionLength:
			r.warn("%s: Meta description too short (%d chars)", path, n)
		default:
			r.warn("%s: Meta description too long (%d chars)", path, n)
		}
	}

	switch p.h1 {
	case 1:
		r.pass("%s: Single H1 tag present", path)
	case 0:
		r.fail("%s: No H1 tag found", path)
	default:
		r.warn("%s: Multiple H1 tags (%d)", path, p.h1)
	}

	if p.canonical != "" {
		r.pass("%s: Canonical URL present", path)
	} else {
		r.fail("%s: Missing canonical URL", path)
	}

	var missingOG []string
	for _, tag := range []string{"og:title", "og:description", "og:image"} {
		if p.og[tag] == "" {
			missingOG = append(missingOG, tag)
		}
	}
	if len(missingOG) == 0 {
		r.pass("%s: Open Graph tags complete", path)
	} else {
		r.fail("%s: Missing Open Graph tags: %s", path, strings.Join(missingOG, ", "))
	}

	if p.twitter["twitter:card"] != "" && p.twitter["twitter:title"] != "" {
		r.pass("%s: Twitter Card tags present", path)
	} else {
		r.fail("%s: Missing Twitter Card tags", path)
	}

	if len(p.jsonLD) == 0 {
		r.fail("%s: No structured data found", path)
	} else {
		valid := 0
		for _, s := range p.jsonLD {
			if json.Valid([]byte(s)) {
				valid++
			}
		}
		if valid == len(p.jsonLD) {
			r.pass("%s: %d valid JSON-LD schema(s)", path, valid)
		} else {
			r.fail("%s: Invalid JSON-LD schemas", path)
		}
	}

	if p.images > 0 {
		if p.missingAlt == 0 {
			r.pass("%s: All %d images have alt text", path, p.images)
		} else {
			r.warn("%s: %d/%d images missing alt text", path, p.missingAlt, p.images)
		}
	}
}

// CheckSitemap verifies the response is well-formed XML with a urlset root.
func CheckSitemap(r *Report, path string, status int, body []byte) {
	if status != 200 {
		r.fail("%s: HTTP %d", path, status)
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(body))
	root := ""
	urls := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.fail("%s: Invalid XML", path)
			return
		}
		if se, ok := tok.(xml.StartElement); ok {
			if root == "" {
				root = se.Name.Local
			}
			if se.Name.Local == "url" {
				urls++
			}
		}
	}
	if root != "urlset" {
		r.fail("%s: Unexpected root element %q", path, root)
		return
	}
	r.pass("%s: Valid XML with %d URLs", path, urls)
}

func CheckRobots(r *Report, status int, body []byte) {
	if status != 200 {
		r.fail("/robots.txt: HTTP %d", status)
		return
	}
	if bytes.Contains(body, []byte("Sitemap:")) {
		r.pass("/robots.txt: Accessible and references sitemaps")
	} else {
		r.warn("/robots.txt: No sitemap reference")
	}
}

// Auditor fetches a running site and checks it.
type Auditor struct {
	client *req.Client
	base   string
}

func NewAuditor(base string, timeout time.Duration) *Auditor {
	return &Auditor{
		client: req.C().SetTimeout(timeout).SetUserAgent("portfolio-seo-check/1.0"),
		base:   strings.TrimRight(base, "/"),
	}
}

func (a *Auditor) fetch(ctx context.Context, path string) (int, []byte, error) {
	resp, err := a.client.R().SetContext(ctx).Get(a.base + path)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, resp.Bytes(), nil
}

func (a *Auditor) Run(ctx context.Context, pages []string) *Report {
	r := &Report{}
	for _, path := range pages {
		status, body, err := a.fetch(ctx, path)
		if err != nil {
			r.fail("%s: Request failed - %v", path, err)
			continue
		}
		CheckPage(r, path, status, body)
	}
	for _, path := range DefaultSitemaps {
		status, body, err := a.fetch(ctx, path)
		if err != nil {
			r.fail("%s: Request failed - %v", path, err)
			continue
		}
		CheckSitemap(r, path, status, body)
	}
	status, body, err := a.fetch(ctx, "/robots.txt")
	if err != nil {
		r.fail("/robots.txt: Request failed - %v", err)
	} else {
		CheckRobots(r, status, body)
	}
	return r
}
