// Package gtk implements the Codec interface for the GTK file chooser
// bookmarks store, a plain-text list with one "location [label]" entry
// per line.
package gtk

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/placesync/placesync/internal/codec"
	"github.com/placesync/placesync/internal/model"
)

// Codec implements the codec.Codec interface for GTK bookmarks
type Codec struct {
	baseDir string
}

// New creates a new GTK codec. baseDir anchors home-relative locations
// during canonicalization.
func New(baseDir string) *Codec {
	return &Codec{baseDir: baseDir}
}

// Backend returns the backend this codec handles
func (c *Codec) Backend() model.Backend {
	return model.GTK
}

// Decode parses the plain-text bookmarks format. Blank lines and lines
// starting with # are ignored. A line whose location cannot be
// canonicalized is skipped with a warning, never fatal.
func (c *Codec) Decode(data []byte) (model.List, []codec.Warning, error) {
	var list model.List
	var warnings []codec.Warning

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rawLocation, rawLabel, _ := strings.Cut(line, " ")
		location, err := model.CanonicalizeLocation(rawLocation, c.baseDir)
		if err != nil {
			warnings = append(warnings, codec.Warning{Entry: line, Detail: err.Error()})
			continue
		}

		label := strings.TrimSpace(rawLabel)
		if label == "" {
			label = model.DeriveLabel(location)
		}
		list = append(list, model.Bookmark{Location: location, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("%w: %v", codec.ErrMalformedDocument, err)
	}

	return model.Dedupe(list), warnings, nil
}

// Encode renders one line per bookmark. GTK permits an absent label, so
// empty labels are omitted rather than derived. Output ends with a
// single newline.
func (c *Codec) Encode(list model.List) ([]byte, error) {
	var buf bytes.Buffer
	for _, b := range list {
		buf.WriteString(b.Location)
		if b.Label != "" {
			buf.WriteByte(' ')
			buf.WriteString(b.Label)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
