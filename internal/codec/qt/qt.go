// Package qt implements the Codec interface for the Qt file dialog
// shortcuts store, an INI-style config with a counted, indexed list of
// locations and an optional parallel list of labels.
package qt

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/placesync/placesync/internal/codec"
	"github.com/placesync/placesync/internal/model"
)

const (
	sectionName = "FileDialog"
	sizeKey     = "shortcuts.size"
	entryPrefix = "shortcuts."
	labelPrefix = "labels."
)

// Codec implements the codec.Codec interface for the Qt INI store
type Codec struct {
	baseDir string
}

// New creates a new Qt codec. baseDir anchors home-relative locations
// during canonicalization.
func New(baseDir string) *Codec {
	return &Codec{baseDir: baseDir}
}

// Backend returns the backend this codec handles
func (c *Codec) Backend() model.Backend {
	return model.Qt
}

// Decode parses the INI store. An absent [FileDialog] group decodes to
// an empty list. The shortcuts.size count must agree with the indexed
// shortcuts.N keys; any mismatch is structural corruption. A missing
// labels.N falls back to the derived label.
func (c *Codec) Decode(data []byte) (model.List, []codec.Warning, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", codec.ErrMalformedDocument, err)
	}

	sec, err := cfg.GetSection(sectionName)
	if err != nil {
		return model.List{}, nil, nil
	}

	if !sec.HasKey(sizeKey) {
		if indexedKeyCount(sec) > 0 {
			return nil, nil, fmt.Errorf("%w: indexed entries present but %s missing", codec.ErrMalformedDocument, sizeKey)
		}
		return model.List{}, nil, nil
	}

	size, err := sec.Key(sizeKey).Int()
	if err != nil || size < 0 {
		return nil, nil, fmt.Errorf("%w: invalid %s value %q", codec.ErrMalformedDocument, sizeKey, sec.Key(sizeKey).String())
	}
	if n := indexedKeyCount(sec); n != size {
		return nil, nil, fmt.Errorf("%w: %s is %d but found %d indexed entries", codec.ErrMalformedDocument, sizeKey, size, n)
	}

	var list model.List
	var warnings []codec.Warning
	for i := 1; i <= size; i++ {
		name := entryPrefix + strconv.Itoa(i)
		if !sec.HasKey(name) {
			return nil, nil, fmt.Errorf("%w: missing entry %s", codec.ErrMalformedDocument, name)
		}
		raw := sec.Key(name).String()
		location, err := model.CanonicalizeLocation(raw, c.baseDir)
		if err != nil {
			warnings = append(warnings, codec.Warning{Entry: raw, Detail: err.Error()})
			continue
		}
		label := sec.Key(labelPrefix + strconv.Itoa(i)).String()
		if label == "" {
			label = model.DeriveLabel(location)
		}
		list = append(list, model.Bookmark{Location: location, Label: label})
	}

	return model.Dedupe(list), warnings, nil
}

// indexedKeyCount counts shortcuts.N keys, excluding the size key.
func indexedKeyCount(sec *ini.Section) int {
	n := 0
	for _, name := range sec.KeyStrings() {
		if name == sizeKey || !strings.HasPrefix(name, entryPrefix) {
			continue
		}
		if _, err := strconv.Atoi(name[len(entryPrefix):]); err == nil {
			n++
		}
	}
	return n
}

// Encode writes the [FileDialog] group with shortcuts.size always
// present, one shortcuts.N per entry in list order, and labels.N for
// every entry so custom labels survive a round trip.
func (c *Codec) Encode(list model.List) ([]byte, error) {
	cfg := ini.Empty()
	sec := cfg.Section(sectionName)
	sec.Key(sizeKey).SetValue(strconv.Itoa(len(list)))

	for i, b := range list {
		n := strconv.Itoa(i + 1)
		label := b.Label
		if label == "" {
			label = model.DeriveLabel(b.Location)
		}
		sec.Key(entryPrefix + n).SetValue(b.Location)
		sec.Key(labelPrefix + n).SetValue(label)
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
