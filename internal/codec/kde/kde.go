// Package kde implements the Codec interface for the KDE places store,
// an XBEL (XML Bookmark Exchange Language) document.
package kde

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/placesync/placesync/internal/codec"
	"github.com/placesync/placesync/internal/model"
)

const doctype = `<!DOCTYPE xbel PUBLIC "+//IDN python.org//DTD XML Bookmark Exchange Language 1.0//EN//XML" "http://www.python.org/topics/xml/dtds/xbel-1.0.dtd">`

// kdeOwner marks entries written by this tool, matching what KDE itself
// stamps on user places.
const kdeOwner = "http://www.kde.org"

type xbel struct {
	XMLName   xml.Name       `xml:"xbel"`
	Version   string         `xml:"version,attr,omitempty"`
	Bookmarks []xbelBookmark `xml:"bookmark"`
}

type xbelBookmark struct {
	Href  string    `xml:"href,attr"`
	Title string    `xml:"title"`
	Info  *xbelInfo `xml:"info,omitempty"`
}

type xbelInfo struct {
	Metadata []xbelMetadata `xml:"metadata"`
}

type xbelMetadata struct {
	Owner        string        `xml:"owner,attr,omitempty"`
	IsSystemItem *isSystemItem `xml:"isSystemItem"`
}

type isSystemItem struct{}

// Codec implements the codec.Codec interface for the KDE XBEL store
type Codec struct {
	baseDir string
}

// New creates a new KDE codec. baseDir anchors home-relative locations
// during canonicalization.
func New(baseDir string) *Codec {
	return &Codec{baseDir: baseDir}
}

// Backend returns the backend this codec handles
func (c *Codec) Backend() model.Backend {
	return model.KDE
}

// Decode parses an XBEL document. Unknown elements and attributes are
// ignored, a missing title falls back to the derived label, and entries
// marked isSystemItem belong to the desktop rather than the user list
// and are skipped. Only unparseable XML or a wrong root element is
// fatal.
func (c *Codec) Decode(data []byte) (model.List, []codec.Warning, error) {
	var doc xbel
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", codec.ErrMalformedDocument, err)
	}

	var list model.List
	var warnings []codec.Warning
	for _, b := range doc.Bookmarks {
		if b.systemItem() {
			continue
		}
		location, err := model.CanonicalizeLocation(b.Href, c.baseDir)
		if err != nil {
			warnings = append(warnings, codec.Warning{Entry: b.Href, Detail: err.Error()})
			continue
		}
		label := b.Title
		if label == "" {
			label = model.DeriveLabel(location)
		}
		list = append(list, model.Bookmark{Location: location, Label: label})
	}

	return model.Dedupe(list), warnings, nil
}

func (b xbelBookmark) systemItem() bool {
	if b.Info == nil {
		return false
	}
	for _, m := range b.Info.Metadata {
		if m.IsSystemItem != nil {
			return true
		}
	}
	return false
}

// Encode renders the list as an XBEL document with a fixed element
// order: XML declaration, DOCTYPE, then one <bookmark> per entry in
// list order. A title is always written, derived when the label is
// empty. Repeated encodes of the same list are byte-identical.
func (c *Codec) Encode(list model.List) ([]byte, error) {
	return c.render(nil, list)
}

// Rewrite regenerates the store, carrying over the desktop-owned
// bookmarks (isSystemItem entries such as Home, Root, Trash) from the
// existing document. Those belong to KDE, not the user list, and are
// written ahead of the user places as KDE itself lays them out. An
// unreadable or unparseable existing document yields a fresh store.
func (c *Codec) Rewrite(existing []byte, list model.List) ([]byte, error) {
	var system []xbelBookmark
	if len(existing) > 0 {
		var doc xbel
		if err := xml.Unmarshal(existing, &doc); err == nil {
			for _, b := range doc.Bookmarks {
				if b.systemItem() {
					system = append(system, b)
				}
			}
		}
	}
	return c.render(system, list)
}

func (c *Codec) render(system []xbelBookmark, list model.List) ([]byte, error) {
	doc := xbel{Version: "1.0", Bookmarks: system}
	for _, b := range list {
		title := b.Label
		if title == "" {
			title = model.DeriveLabel(b.Location)
		}
		doc.Bookmarks = append(doc.Bookmarks, xbelBookmark{
			Href:  b.Location,
			Title: title,
			Info: &xbelInfo{
				Metadata: []xbelMetadata{{Owner: kdeOwner}},
			},
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(doctype)
	buf.WriteByte('\n')

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
