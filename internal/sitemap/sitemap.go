package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"actor-portfolio/internal/content"
	"actor-portfolio/internal/images"
	"actor-portfolio/internal/seo"
)

const (
	nsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	nsImage   = "http://www.google.com/schemas/sitemap-image/1.1"
	nsVideo   = "http://www.google.com/schemas/sitemap-video/1.1"
	nsNews    = "http://www.google.com/schemas/sitemap-news/0.9"
)

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Image   string   `xml:"xmlns:image,attr,omitempty"`
	Video   string   `xml:"xmlns:video,attr,omitempty"`
	News    string   `xml:"xmlns:news,attr,omitempty"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq string     `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
	Images     []imageTag `xml:"image:image"`
	Videos     []videoTag `xml:"video:video"`
	News       *newsTag   `xml:"news:news"`
}

type imageTag struct {
	Loc         string `xml:"image:loc"`
	Caption     string `xml:"image:caption"`
	Title       string `xml:"image:title"`
	GeoLocation string `xml:"image:geo_location,omitempty"`
	License     string `xml:"image:license"`
}

type uploader struct {
	Name string `xml:",chardata"`
	Info string `xml:"info,attr"`
}

type videoTag struct {
	ThumbnailLoc    string    `xml:"video:thumbnail_loc"`
	Title           string    `xml:"video:title"`
	Description     string    `xml:"video:description"`
	ContentLoc      string    `xml:"video:content_loc"`
	PlayerLoc       string    `xml:"video:player_loc"`
	Duration        int       `xml:"video:duration"`
	PublicationDate string    `xml:"video:publication_date"`
	Tags            []string  `xml:"video:tag"`
	Category        string    `xml:"video:category"`
	Rating          string    `xml:"video:rating"`
	ViewCount       int       `xml:"video:view_count,omitempty"`
	FamilyFriendly  string    `xml:"video:family_friendly"`
	Uploader        *uploader `xml:"video:uploader,omitempty"`
}

type newsTag struct {
	Publication     publication `xml:"news:publication"`
	PublicationDate string      `xml:"news:publication_date"`
	Title           string      `xml:"news:title"`
	Keywords        string      `xml:"news:keywords,omitempty"`
}

type publication struct {
	Name     string `xml:"news:name"`
	Language string `xml:"news:language"`
}

// Builder renders the site's sitemaps from the SEO profile.
type Builder struct {
	Profile *seo.Profile
	Images  *images.Resolver
	Now     func() time.Time
}

func NewBuilder(p *seo.Profile, r *images.Resolver) *Builder {
	return &Builder{Profile: p, Images: r, Now: time.Now}
}

func (b *Builder) imageURL(name string) (string, bool) {
	if b.Images != nil {
		if u, ok := b.Images.Best(name); ok {
			return b.Profile.URL(u), true
		}
	}
	return "", false
}

func (b *Builder) caption(name string) string {
	for _, g := range b.Profile.Gallery {
		if g.Name == name {
			return g.Caption
		}
	}
	who := b.Profile.Person.AlternateName
	switch {
	case strings.HasPrefix(name, "headshot-"):
		return fmt.Sprintf("%s Professional Headshot - Photo %s", who, strings.TrimPrefix(name, "headshot-"))
	case strings.HasSuffix(name, "-highlight"):
		return fmt.Sprintf("%s %s Production Photo", who, titleCase(strings.TrimSuffix(name, "-highlight")))
	default:
		return fmt.Sprintf("%s %s", who, titleCase(name))
	}
}

func (b *Builder) reelVideo(file string) videoTag {
	p := b.Profile
	family := "no"
	if p.Reel.FamilyFriendly {
		family = "yes"
	}
	return videoTag{
		ThumbnailLoc:    p.URL("/static/images/" + p.Reel.Thumbnail + ".jpg"),
		Title:           p.Reel.Name,
		Description:     p.Reel.Description,
		ContentLoc:      p.URL("/video/" + file),
		PlayerLoc:       p.URL(p.Pages["reel"].Path),
		Duration:        p.Reel.DurationSeconds,
		PublicationDate: p.Reel.PublicationDate,
		Tags:            p.Reel.Tags,
		Category:        p.Reel.Category,
		Rating:          fmt.Sprintf("%.1f", p.Reel.Rating),
		ViewCount:       p.Reel.ViewCount,
		FamilyFriendly:  family,
		Uploader:        &uploader{Name: p.Person.Name, Info: p.SiteURL},
	}
}

// Sitemap is the main sitemap: every page with its images and videos.
func (b *Builder) Sitemap() ([]byte, error) {
	set := urlSet{Xmlns: nsSitemap, Image: nsImage, Video: nsVideo, News: nsNews}
	today := b.Now().Format("2006-01-02")

	for _, name := range b.Profile.PageNames() {
		page := b.Profile.Pages[name]
		u := url{
			Loc:        b.Profile.URL(page.Path),
			LastMod:    today,
			ChangeFreq: page.ChangeFreq,
			Priority:   page.Priority,
		}
		for _, img := range page.Images {
			loc, ok := b.imageURL(img)
			if !ok {
				continue
			}
			caption := b.caption(img)
			u.Images = append(u.Images, imageTag{
				Loc:     loc,
				Caption: caption,
				Title:   caption,
				License: b.Profile.URL("/license"),
			})
		}
		for _, v := range page.Videos {
			u.Videos = append(u.Videos, b.reelVideo(v))
		}
		set.URLs = append(set.URLs, u)
	}
	return encode(set)
}

// News lists dated content entries as Google News items.
func (b *Builder) News(entries []content.Entry) ([]byte, error) {
	set := urlSet{Xmlns: nsSitemap, News: nsNews}
	newsPath := "/news"
	if page, ok := b.Profile.Pages["news"]; ok && page.Path != "" {
		newsPath = page.Path
	}

	for _, e := range entries {
		if e.Date == "" {
			continue
		}
		set.URLs = append(set.URLs, url{
			Loc: b.Profile.URL(newsPath + "#" + e.Slug),
			News: &newsTag{
				Publication:     publication{Name: b.Profile.SiteName, Language: "en"},
				PublicationDate: e.Date,
				Title:           e.Title,
				Keywords:        e.Keywords,
			},
		})
	}
	return encode(set)
}

// ImageSitemap groups the gallery by the page each image appears on.
func (b *Builder) ImageSitemap() ([]byte, error) {
	set := urlSet{Xmlns: nsSitemap, Image: nsImage}
	index := map[string]int{}
	geo := b.Profile.Person.GeoLocation

	for _, g := range b.Profile.Gallery {
		i, ok := index[g.Page]
		if !ok {
			i = len(set.URLs)
			index[g.Page] = i
			set.URLs = append(set.URLs, url{Loc: b.Profile.URL(g.Page)})
		}
		loc, found := b.imageURL(g.Name)
		if !found {
			loc = b.Profile.URL("/static/images/" + g.Name + ".jpg")
		}
		tag := imageTag{
			Loc:     loc,
			Caption: g.Caption,
			Title:   g.Title,
			License: b.Profile.URL("/license"),
		}
		lower := strings.ToLower(g.Caption)
		if strings.Contains(lower, "los angeles") || strings.Contains(lower, "headshot") {
			tag.GeoLocation = geo
		}
		set.URLs[i].Images = append(set.URLs[i].Images, tag)
	}
	return encode(set)
}

func (b *Builder) VideoSitemap() ([]byte, error) {
	set := urlSet{Xmlns: nsSitemap, Video: nsVideo}
	for _, name := range b.Profile.PageNames() {
		page := b.Profile.Pages[name]
		if len(page.Videos) == 0 {
			continue
		}
		u := url{Loc: b.Profile.URL(page.Path)}
		for _, v := range page.Videos {
			u.Videos = append(u.Videos, b.reelVideo(v))
		}
		set.URLs = append(set.URLs, u)
	}
	return encode(set)
}

func encode(set urlSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
