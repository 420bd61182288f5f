// Package model defines the canonical bookmark representation shared by
// all backend codecs, plus the location canonicalization rules that make
// bookmarks comparable across stores.
package model

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ErrMalformedLocation indicates a location that cannot be canonicalized
// into an absolute file URI.
var ErrMalformedLocation = errors.New("malformed location")

// Bookmark is a single favorite-folder entry.
type Bookmark struct {
	// Location is the canonical file URI of the target folder.
	Location string
	// Label is the display name. Decoders always populate it, deriving
	// one from the location when the source omits it.
	Label string
}

// List is an ordered bookmark list. Order reflects the user's menu order.
type List []Bookmark

// CanonicalizeLocation normalizes a raw location into the canonical
// percent-escaped file URI used as the uniqueness key across stores.
// Accepted inputs are file URIs, absolute paths, and paths with a
// leading ~ which expands to baseDir. Anything else cannot produce an
// absolute path and is reported as ErrMalformedLocation.
func CanonicalizeLocation(raw, baseDir string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty location", ErrMalformedLocation)
	}

	var p string
	switch {
	case strings.HasPrefix(raw, "file://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrMalformedLocation, raw, err)
		}
		// A remote host would alias into the local namespace once the
		// authority is dropped. Only the local forms are representable.
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("%w: non-local host %q in %q", ErrMalformedLocation, u.Host, raw)
		}
		p = u.Path
	case raw == "~":
		p = baseDir
	case strings.HasPrefix(raw, "~/"):
		p = filepath.Join(baseDir, raw[2:])
	case strings.Contains(raw, "://"):
		return "", fmt.Errorf("%w: unsupported scheme in %q", ErrMalformedLocation, raw)
	default:
		p = raw
	}

	p = path.Clean(filepath.ToSlash(p))
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q is not absolute", ErrMalformedLocation, raw)
	}

	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}

// DeriveLabel extracts a presentable label from a canonical location:
// the last path segment, URI-decoded. Falls back to the location itself
// when no segment can be extracted.
func DeriveLabel(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	seg := path.Base(u.Path)
	if seg == "" || seg == "." || seg == "/" {
		return location
	}
	return seg
}

// Dedupe removes entries that share a canonical location. The last
// occurrence wins: earlier duplicates are dropped and the survivor keeps
// the position of the last occurrence.
func Dedupe(list List) List {
	last := make(map[string]int, len(list))
	for i, b := range list {
		last[b.Location] = i
	}
	out := make(List, 0, len(last))
	for i, b := range list {
		if last[b.Location] == i {
			out = append(out, b)
		}
	}
	return out
}
