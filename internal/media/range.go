package media

import (
	"errors"
	"strconv"
	"strings"
)

// Range is an inclusive byte range [Start, End] inside a file.
type Range struct {
	Start int64
	End   int64
}

func (r Range) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange formats the Content-Range header value for a file of the given size.
func (r Range) ContentRange(total int64) string {
	return "bytes " + strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10) + "/" + strconv.FormatInt(total, 10)
}

// ParseRange parses a single "bytes=<start>-<end>" header against a file of
// total bytes. Either bound may be empty: an empty start means 0 and an empty
// end means the last byte. Both bounds are clamped to the file, including
// values too large for a uint64. ok is false when the header cannot be served
// as a single range, in which case the caller serves the whole file.
func ParseRange(header string, total int64) (r Range, ok bool) {
	if total <= 0 {
		return
	}

	unit, set, found := strings.Cut(strings.TrimSpace(header), "=")
	if !found || strings.TrimSpace(unit) != "bytes" {
		return
	}

	first, last, found := strings.Cut(set, "-")
	if !found {
		return
	}
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)

	var start, end uint64 = 0, uint64(total - 1)
	if len(first) > 0 {
		if start, ok = parseBound(first); !ok {
			return Range{}, false
		}
	}
	if len(last) > 0 {
		if end, ok = parseBound(last); !ok {
			return Range{}, false
		}
	}

	maxEnd := uint64(total - 1)
	if start > maxEnd {
		start = maxEnd
	}
	if end > maxEnd {
		end = maxEnd
	}
	if start > end {
		return Range{}, false
	}

	return Range{Start: int64(start), End: int64(end)}, true
}

// parseBound reads a decimal range bound. Digit strings past the uint64 range
// saturate so they clamp like any other oversized bound.
func parseBound(s string) (uint64, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}
