package seo

import (
	"encoding/json"
	"html/template"
	"strconv"
	"strings"
)

const defaultRobots = "index, follow, max-snippet:-1, max-image-preview:large"

type Schema map[string]interface{}

// MetaTags holds the head tags rendered on every page.
type MetaTags struct {
	Title              string
	Description        string
	Keywords           string
	Author             string
	Canonical          string
	Robots             string
	Image              string
	ImageAlt           string
	OGTitle            string
	OGDescription      string
	OGImage            string
	OGURL              string
	OGType             string
	OGSiteName         string
	OGVideo            string
	TwitterCard        string
	TwitterSite        string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string
	TwitterPlayer      string
	Section            string
	ThemeColor         string
}

// Generator builds meta tags and JSON-LD for a site profile.
type Generator struct {
	Profile *Profile
}

func NewGenerator(p *Profile) *Generator {
	return &Generator{Profile: p}
}

// MetaTags fills empty page fields from the profile defaults.
func (g *Generator) MetaTags(page PageConfig, canonical string) MetaTags {
	p := g.Profile

	title := firstNonEmpty(page.Title, p.DefaultTitle)
	description := firstNonEmpty(page.Description, p.DefaultDescription)
	keywords := page.Keywords
	if len(keywords) == 0 {
		keywords = p.DefaultKeywords
	}
	image := p.URL(firstNonEmpty(page.Image, p.DefaultImage))
	if canonical == "" {
		canonical = p.URL(firstNonEmpty(page.Path, "/"))
	}
	alt := p.Person.Name + " - " + p.Person.JobTitle

	tags := MetaTags{
		Title:              title,
		Description:        description,
		Keywords:           strings.Join(keywords, ", "),
		Author:             p.Person.Name,
		Canonical:          canonical,
		Robots:             firstNonEmpty(page.Robots, defaultRobots),
		Image:              image,
		ImageAlt:           alt,
		OGTitle:            title,
		OGDescription:      description,
		OGImage:            image,
		OGURL:              canonical,
		OGType:             firstNonEmpty(page.OGType, "website"),
		OGSiteName:         p.SiteName,
		TwitterCard:        "summary_large_image",
		TwitterSite:        p.TwitterHandle,
		TwitterTitle:       title,
		TwitterDescription: description,
		TwitterImage:       image,
		Section:            firstNonEmpty(page.Section, "Entertainment"),
		ThemeColor:         "#ffd700",
	}
	if len(page.Videos) > 0 {
		tags.OGVideo = p.URL("/video/" + page.Videos[0])
		tags.TwitterPlayer = p.URL(page.Path)
	}
	return tags
}

// PageSchemaOptions carries the per-request data some schema types embed.
type PageSchemaOptions struct {
	Images    []string
	BlogPosts []Schema
}

func (g *Generator) baseSchema() Schema {
	p := g.Profile
	return Schema{
		"@context":      "https://schema.org",
		"@type":         []string{"Person", "PerformingArtist"},
		"name":          p.Person.Name,
		"alternateName": p.Person.AlternateName,
		"jobTitle":      p.Person.JobTitle,
		"description":   p.Person.Description,
		"url":           p.SiteURL,
		"sameAs":        p.Social,
		"address": Schema{
			"@type":           "PostalAddress",
			"addressLocality": p.Person.Locality,
			"addressRegion":   p.Person.Region,
			"addressCountry":  p.Person.Country,
		},
		"contactPoint": Schema{
			"@type":     "ContactPoint",
			"email":     p.ContactEmail,
			"telephone": p.ContactPhone,
		},
	}
}

// PageSchema builds the Person based JSON-LD for a page type.
func (g *Generator) PageSchema(pageType string, opts PageSchemaOptions) Schema {
	p := g.Profile
	s := g.baseSchema()

	switch pageType {
	case "homepage":
		s["@type"] = []string{"Person", "PerformingArtist", "WebSite"}
		s["potentialAction"] = Schema{
			"@type":       "SearchAction",
			"target":      p.SiteURL + "/search?q={search_term_string}",
			"query-input": "required name=search_term_string",
		}
	case "about":
		s["knowsAbout"] = []string{"Acting", "Comedy", "Drama", "Digital Content Creation", "Social Media"}
		s["award"] = p.Achievements
	case "resume":
		s["@type"] = []string{"Person", "PerformingArtist", "Resume"}
		s["hasCredential"] = []Schema{{
			"@type":              "EducationalOccupationalCredential",
			"credentialCategory": "degree",
			"educationalLevel":   "Bachelor's",
			"recognizedBy":       "Gannon University & Liberty University",
		}}
	case "gallery":
		if len(opts.Images) > 0 {
			s["image"] = opts.Images
		}
	case "contact":
		s["@type"] = []string{"Person", "ContactPage"}
		s["availableService"] = Schema{
			"@type":       "Service",
			"name":        "Acting Services",
			"description": "Professional acting for film, television, theater, and digital content",
		}
	case "news":
		posts := opts.BlogPosts
		if posts == nil {
			posts = []Schema{}
		}
		s["@type"] = []string{"Person", "Blog"}
		s["blogPost"] = posts
	case "reel":
		s["@type"] = []string{"Person", "VideoObject"}
		s["video"] = Schema{
			"@type":       "VideoObject",
			"name":        p.Reel.Name,
			"description": p.Reel.Description,
			"uploadDate":  p.Reel.UploadDate,
			"duration":    isoDuration(p.Reel.DurationSeconds),
		}
	}
	return s
}

type Breadcrumb struct {
	Name string
	URL  string
}

func BreadcrumbSchema(crumbs []Breadcrumb) Schema {
	items := make([]Schema, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, Schema{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	return Schema{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

// VideoSchema describes the demo reel as a VideoObject.
func (g *Generator) VideoSchema() Schema {
	p := g.Profile
	return Schema{
		"@context":     "https://schema.org",
		"@type":        "VideoObject",
		"name":         p.Reel.Name,
		"description":  p.Reel.Description,
		"thumbnailUrl": p.URL("/static/images/" + p.Reel.Thumbnail + ".jpg"),
		"uploadDate":   p.Reel.UploadDate,
		"duration":     isoDuration(p.Reel.DurationSeconds),
		"contentUrl":   p.URL("/video/" + p.Reel.File),
		"embedUrl":     p.URL("/reel"),
		"creator": Schema{
			"@type": "Person",
			"name":  p.Person.Name,
			"url":   p.SiteURL,
		},
		"keywords":   p.Reel.Tags,
		"genre":      []string{"Drama", "Comedy", "Commercial"},
		"inLanguage": "en-US",
	}
}

type Article struct {
	Title         string
	Description   string
	Image         string
	URL           string
	DatePublished string
	DateModified  string
}

func (g *Generator) ArticleSchema(a Article) Schema {
	p := g.Profile
	image := a.Image
	if image == "" {
		image = p.DefaultImage
	}
	modified := firstNonEmpty(a.DateModified, a.DatePublished)
	return Schema{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    a.Title,
		"description": a.Description,
		"image":       p.URL(image),
		"author": Schema{
			"@type": "Person",
			"name":  p.Person.Name,
			"url":   p.SiteURL,
		},
		"publisher": Schema{
			"@type": "Organization",
			"name":  p.SiteName,
			"url":   p.SiteURL,
			"logo": Schema{
				"@type": "ImageObject",
				"url":   p.URL(p.DefaultImage),
			},
		},
		"datePublished":    a.DatePublished,
		"dateModified":     modified,
		"mainEntityOfPage": Schema{"@type": "WebPage", "@id": p.URL(a.URL)},
	}
}

// PageData is everything a page template needs for its head section.
type PageData struct {
	Name    string
	Page    PageConfig
	Meta    MetaTags
	Schemas []Schema
}

// JSONLD renders the schemas as script-safe JSON.
func (d PageData) JSONLD() []template.JS {
	out := make([]template.JS, 0, len(d.Schemas))
	for _, s := range d.Schemas {
		data, err := json.Marshal(s)
		if err != nil {
			continue
		}
		out = append(out, template.JS(data))
	}
	return out
}

// PageData assembles meta tags and schemas for a named page. Unknown names
// get the profile defaults.
func (g *Generator) PageData(name, canonical string, opts PageSchemaOptions) PageData {
	page, ok := g.Profile.Pages[name]
	if !ok {
		page = PageConfig{Path: "/" + name}
	}

	schemas := []Schema{g.PageSchema(page.SchemaType, opts)}
	crumbs := []Breadcrumb{{Name: "Home", URL: g.Profile.URL("/")}}
	if page.Path != "" && page.Path != "/" {
		crumbs = append(crumbs, Breadcrumb{Name: page.Section, URL: g.Profile.URL(page.Path)})
		schemas = append(schemas, BreadcrumbSchema(crumbs))
	}
	if page.SchemaType == "reel" {
		schemas = append(schemas, g.VideoSchema())
	}

	return PageData{
		Name:    name,
		Page:    page,
		Meta:    g.MetaTags(page, canonical),
		Schemas: schemas,
	}
}

func isoDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	out := "PT"
	if m := seconds / 60; m > 0 {
		out += strconv.Itoa(m) + "M"
	}
	if s := seconds % 60; s > 0 {
		out += strconv.Itoa(s) + "S"
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
