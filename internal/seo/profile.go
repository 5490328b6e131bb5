package seo

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultProfile []byte

type Person struct {
	Name          string `yaml:"name"`
	AlternateName string `yaml:"alternate_name"`
	JobTitle      string `yaml:"job_title"`
	Description   string `yaml:"description"`
	Locality      string `yaml:"locality"`
	Region        string `yaml:"region"`
	Country       string `yaml:"country"`
	GeoLocation   string `yaml:"geo_location"`
}

type Reel struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	File            string   `yaml:"file"`
	Thumbnail       string   `yaml:"thumbnail"`
	DurationSeconds int      `yaml:"duration_seconds"`
	UploadDate      string   `yaml:"upload_date"`
	PublicationDate string   `yaml:"publication_date"`
	Category        string   `yaml:"category"`
	Rating          float64  `yaml:"rating"`
	ViewCount       int      `yaml:"view_count"`
	FamilyFriendly  bool     `yaml:"family_friendly"`
	Tags            []string `yaml:"tags"`
}

type GalleryImage struct {
	Name    string `yaml:"name"`
	Caption string `yaml:"caption"`
	Title   string `yaml:"title"`
	Page    string `yaml:"page"`
}

type PageConfig struct {
	Path        string   `yaml:"path"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	Image       string   `yaml:"image"`
	SchemaType  string   `yaml:"schema_type"`
	OGType      string   `yaml:"og_type"`
	Section     string   `yaml:"section"`
	Robots      string   `yaml:"robots"`
	Priority    string   `yaml:"priority"`
	ChangeFreq  string   `yaml:"changefreq"`
	Images      []string `yaml:"images"`
	Videos      []string `yaml:"videos"`
}

// Profile is the site-wide SEO configuration.
type Profile struct {
	SiteName           string                `yaml:"site_name"`
	SiteURL            string                `yaml:"site_url"`
	DefaultTitle       string                `yaml:"default_title"`
	DefaultDescription string                `yaml:"default_description"`
	DefaultImage       string                `yaml:"default_image"`
	DefaultKeywords    []string              `yaml:"default_keywords"`
	TwitterHandle      string                `yaml:"twitter_handle"`
	Person             Person                `yaml:"person"`
	Social             []string              `yaml:"social"`
	ContactEmail       string                `yaml:"contact_email"`
	ContactPhone       string                `yaml:"contact_phone"`
	Achievements       []string              `yaml:"achievements"`
	Reel               Reel                  `yaml:"reel"`
	Gallery            []GalleryImage        `yaml:"gallery"`
	Pages              map[string]PageConfig `yaml:"pages"`
}

var pageOrder = []string{"index", "about", "reel", "resume", "gallery", "news", "contact"}

// LoadProfile reads a profile from path, or the built-in profile when path is empty.
func LoadProfile(path string) (*Profile, error) {
	data := defaultProfile
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read site profile: %w", err)
		}
	}
	return ParseProfile(data)
}

func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse site profile: %w", err)
	}
	if p.SiteURL == "" {
		return nil, fmt.Errorf("parse site profile: site_url is required")
	}
	p.SiteURL = strings.TrimRight(p.SiteURL, "/")
	return &p, nil
}

// URL turns a site-relative path into an absolute URL.
func (p *Profile) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return p.SiteURL + path
}

// PageNames lists configured pages in navigation order.
func (p *Profile) PageNames() []string {
	names := make([]string, 0, len(p.Pages))
	seen := map[string]bool{}
	for _, name := range pageOrder {
		if _, ok := p.Pages[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range p.Pages {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func (p *Profile) Host() string {
	host := strings.TrimPrefix(p.SiteURL, "https://")
	return strings.TrimPrefix(host, "http://")
}
