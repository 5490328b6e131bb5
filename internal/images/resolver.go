package images

import (
	"os"
	"path/filepath"
	"strings"
)

var DefaultFormats = []string{"webp", "jpg", "jpeg", "png"}

// Image lists the formats available on disk for one image name.
type Image struct {
	Name     string
	Formats  map[string]string
	Fallback string
	HasWebP  bool
	HasJPG   bool
	HasPNG   bool
}

// Resolver looks images up under <staticDir>/images and builds URLs under urlPrefix.
type Resolver struct {
	dir       string
	urlPrefix string
}

func NewResolver(staticDir, urlPrefix string) *Resolver {
	return &Resolver{
		dir:       filepath.Join(staticDir, "images"),
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

func (r *Resolver) url(file string) string {
	return r.urlPrefix + "/images/" + file
}

func (r *Resolver) exists(file string) bool {
	info, err := os.Stat(filepath.Join(r.dir, file))
	return err == nil && info.Mode().IsRegular()
}

// Lookup checks each format in order. The fallback is the last raster format
// found, or the first format found when only webp exists.
func (r *Resolver) Lookup(name string, formats ...string) Image {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	img := Image{Name: name, Formats: map[string]string{}}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return img
	}

	for _, ext := range formats {
		file := name + "." + ext
		if !r.exists(file) {
			continue
		}
		u := r.url(file)
		img.Formats[ext] = u
		if img.Fallback == "" || ext == "jpg" || ext == "jpeg" || ext == "png" {
			img.Fallback = u
		}
	}

	_, img.HasWebP = img.Formats["webp"]
	_, jpg := img.Formats["jpg"]
	_, jpeg := img.Formats["jpeg"]
	img.HasJPG = jpg || jpeg
	_, img.HasPNG = img.Formats["png"]
	return img
}

// Best returns the preferred URL (webp, then jpg, then png) and false when no
// file exists.
func (r *Resolver) Best(name string) (string, bool) {
	img := r.Lookup(name, "webp", "jpg", "png")
	for _, ext := range []string{"webp", "jpg", "png"} {
		if u, ok := img.Formats[ext]; ok {
			return u, true
		}
	}
	return "", false
}
