package content

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Entry is one markdown file from a content directory.
type Entry struct {
	Slug     string
	Title    string
	Date     string
	Image    string
	Summary  string
	Keywords string
	HTML     template.HTML
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// LoadEntries reads every *.md file in dir. A missing directory yields no entries.
// Entries are sorted by date, newest first.
func LoadEntries(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read content dir %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", f.Name(), err)
		}
		entry, err := ParseEntry(strings.TrimSuffix(f.Name(), ".md"), data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

// ParseEntry splits the "Key: value" header from the body. The header ends at
// the first blank line; header lines without a colon belong to the body.
func ParseEntry(slug string, data []byte) (Entry, error) {
	meta := map[string]string{}
	var body []string
	inMeta := true

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if inMeta && strings.TrimSpace(line) == "" {
			inMeta = false
			continue
		}
		if inMeta {
			if key, value, ok := strings.Cut(line, ":"); ok {
				meta[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
				continue
			}
		}
		body = append(body, line)
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(strings.Join(body, "\n")), &buf); err != nil {
		return Entry{}, fmt.Errorf("render entry %s: %w", slug, err)
	}

	title := meta["title"]
	if title == "" {
		title = titleFromSlug(slug)
	}

	return Entry{
		Slug:     slug,
		Title:    title,
		Date:     meta["date"],
		Image:    meta["image"],
		Summary:  meta["summary"],
		Keywords: meta["keywords"],
		HTML:     template.HTML(buf.String()),
	}, nil
}

func titleFromSlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
