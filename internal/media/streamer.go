package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const DefaultChunkSize = 1 << 20

// ErrNotFound covers both missing files and names that do not resolve inside
// the media directory. Callers must not tell the two apart.
var ErrNotFound = errors.New("media: not found")

var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// ContentType returns the fixed content type for a media file name.
func ContentType(name string) (string, bool) {
	ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]
	return ct, ok
}

// Streamer serves files from a single media directory.
type Streamer struct {
	dir       string
	chunkSize int
	maxAge    int
}

type Option func(*Streamer)

func WithChunkSize(size int) Option {
	return func(s *Streamer) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

func WithMaxAge(seconds int) Option {
	return func(s *Streamer) {
		if seconds >= 0 {
			s.maxAge = seconds
		}
	}
}

func NewStreamer(dir string, opts ...Option) *Streamer {
	s := &Streamer{
		dir:       dir,
		chunkSize: DefaultChunkSize,
		maxAge:    3600,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Streamer) Dir() string {
	return s.dir
}

// Resolve maps a client supplied file name to an absolute path inside the
// media directory.
func (s *Streamer) Resolve(name string) (string, error) {
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", ErrNotFound
	}
	// Decode twice so "..%252F" cannot survive as a literal escape.
	if again, err := url.PathUnescape(decoded); err == nil {
		decoded = again
	}

	if decoded == "" || strings.HasPrefix(decoded, ".") ||
		strings.Contains(decoded, "..") ||
		strings.ContainsAny(decoded, "/\\\x00") {
		return "", ErrNotFound
	}
	if _, ok := ContentType(decoded); !ok {
		return "", ErrNotFound
	}

	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", ErrNotFound
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return "", ErrNotFound
	}

	full, err := filepath.EvalSymlinks(filepath.Join(root, decoded))
	if err != nil {
		return "", ErrNotFound
	}
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return "", ErrNotFound
	}
	return full, nil
}

// List returns the names of the servable media files, sorted.
func (s *Streamer) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, ok := ContentType(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Open prepares the response for one request. The returned Response owns an
// open file handle and must be closed by the caller.
func (s *Streamer) Open(name, rangeHeader string) (*Response, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrNotFound
	}
	stat, err := file.Stat()
	if err != nil || !stat.Mode().IsRegular() {
		_ = file.Close()
		return nil, ErrNotFound
	}

	contentType, _ := ContentType(path)
	total := stat.Size()
	resp := &Response{
		Status:        http.StatusOK,
		ContentType:   contentType,
		ContentLength: total,
		Total:         total,
		CacheControl:  "public, max-age=" + strconv.Itoa(s.maxAge),
		file:          file,
		chunkSize:     s.chunkSize,
		rng:           Range{Start: 0, End: total - 1},
	}

	if rangeHeader != "" {
		if r, ok := ParseRange(rangeHeader, total); ok {
			resp.Status = http.StatusPartialContent
			resp.ContentRange = r.ContentRange(total)
			resp.ContentLength = r.Length()
			resp.rng = r
		}
	}

	return resp, nil
}

// Response describes a 200 or 206 answer and produces its body lazily.
type Response struct {
	Status        int
	ContentType   string
	ContentLength int64
	ContentRange  string
	CacheControl  string
	Total         int64

	file      *os.File
	chunkSize int
	rng       Range
}

func (r *Response) Range() Range {
	return r.rng
}

// Header copies the response headers into h.
func (r *Response) Header(h http.Header) {
	h.Set("Content-Type", r.ContentType)
	h.Set("Content-Length", strconv.FormatInt(r.ContentLength, 10))
	h.Set("Accept-Ranges", "bytes")
	h.Set("Cache-Control", r.CacheControl)
	if r.ContentRange != "" {
		h.Set("Content-Range", r.ContentRange)
	}
}

// WriteTo copies exactly ContentLength bytes to w, one chunk at a time. It
// stops as soon as ctx is done or a write fails.
func (r *Response) WriteTo(ctx context.Context, w io.Writer) (int64, error) {
	if r.ContentLength <= 0 {
		return 0, nil
	}

	var flusher http.Flusher
	if f, ok := w.(http.Flusher); ok {
		flusher = f
	}

	reader := io.NewSectionReader(r.file, r.rng.Start, r.ContentLength)
	buf := make([]byte, min(int64(r.chunkSize), r.ContentLength))
	var written int64
	for written < r.ContentLength {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		n, readErr := reader.Read(buf)
		if n > 0 {
			m, err := w.Write(buf[:n])
			written += int64(m)
			if err != nil {
				return written, err
			}
			if m < n {
				return written, io.ErrShortWrite
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr != nil {
			if readErr == io.EOF && written == r.ContentLength {
				break
			}
			if readErr == io.EOF {
				return written, fmt.Errorf("media: file shrank after %d of %d bytes: %w", written, r.ContentLength, io.ErrUnexpectedEOF)
			}
			return written, readErr
		}
	}
	return written, nil
}

func (r *Response) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
