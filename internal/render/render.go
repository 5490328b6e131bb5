package render

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
)

const (
	EncodingBrotli = "br"
	EncodingGzip   = "gzip"
)

// Renderer writes generated responses: minified HTML, compressed when the
// client accepts it, with an ETag over the uncompressed body that also names
// the content-coding.
type Renderer struct {
	minifier *minify.M
	minSize  int
}

func New(minSize int) *Renderer {
	m := minify.New()
	m.Add("text/html", &html.Minifier{KeepEndTags: true, KeepDocumentTags: true})
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`[/+]json$`), json.Minify)
	return &Renderer{minifier: m, minSize: minSize}
}

// MinifyHTML returns body unchanged if minification fails.
func (r *Renderer) MinifyHTML(body []byte) []byte {
	out, err := r.minifier.Bytes("text/html", body)
	if err != nil {
		log.Printf("render: minify failed: %v", err)
		return body
	}
	return out
}

// ETag is a strong validator for body.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}

// EncodedETag is the validator for body sent with content-coding enc.
// Each coding gets its own tag.
func EncodedETag(body []byte, enc string) string {
	if enc == "" {
		return ETag(body)
	}
	return fmt.Sprintf(`"%016x-%s"`, xxhash.Sum64(body), enc)
}

// Write sends body with caching and compression headers. HTML bodies are
// minified first.
func (r *Renderer) Write(c *gin.Context, status int, contentType string, body []byte, maxAge int) {
	if strings.HasPrefix(contentType, "text/html") {
		body = r.MinifyHTML(body)
	}

	h := c.Writer.Header()
	h.Set("Vary", "Accept-Encoding")
	if maxAge > 0 {
		h.Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
	}

	enc := ""
	if len(body) >= r.minSize {
		enc = Negotiate(c.GetHeader("Accept-Encoding"))
	}

	if status == http.StatusOK {
		etag := EncodedETag(body, enc)
		h.Set("ETag", etag)
		if matchETag(c.GetHeader("If-None-Match"), etag) {
			c.Status(http.StatusNotModified)
			c.Writer.WriteHeaderNow()
			return
		}
	}

	if enc != "" {
		compressed, err := compress(enc, body)
		if err != nil {
			log.Printf("render: %s compression failed: %v", enc, err)
			if status == http.StatusOK {
				h.Set("ETag", ETag(body))
			}
		} else {
			h.Set("Content-Encoding", enc)
			body = compressed
		}
	}

	if c.Request.Method == http.MethodHead {
		h.Set("Content-Type", contentType)
		h.Set("Content-Length", strconv.Itoa(len(body)))
		c.Status(status)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(status, contentType, body)
}

func matchETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// Negotiate picks br or gzip from an Accept-Encoding header, preferring br
// when both are equally acceptable. It returns "" for identity.
func Negotiate(header string) string {
	var brQ, gzipQ, anyQ float64 = -1, -1, -1
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case EncodingBrotli:
			brQ = q
		case EncodingGzip, "x-gzip":
			gzipQ = q
		case "*":
			anyQ = q
		}
	}
	if brQ < 0 {
		brQ = anyQ
	}
	if gzipQ < 0 {
		gzipQ = anyQ
	}

	switch {
	case brQ > 0 && brQ >= gzipQ:
		return EncodingBrotli
	case gzipQ > 0:
		return EncodingGzip
	}
	return ""
}

func compress(enc string, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch enc {
	case EncodingBrotli:
		w = brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	case EncodingGzip:
		gw, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
		if err != nil {
			return nil, err
		}
		w = gw
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
	if _, err := w.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
