package kde

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/placesync/placesync/internal/codec"
	"github.com/placesync/placesync/internal/model"
)

const baseDir = "/home/u"

func TestCodec_Decode(t *testing.T) {
	c := New(baseDir)

	tests := []struct {
		name         string
		input        string
		want         model.List
		wantWarnings int
	}{
		{
			"empty document",
			`<xbel version="1.0"></xbel>`,
			model.List{},
			0,
		},
		{
			"bookmark with title",
			`<xbel><bookmark href="file:///home/u/Documents"><title>Docs</title></bookmark></xbel>`,
			model.List{{Location: "file:///home/u/Documents", Label: "Docs"}},
			0,
		},
		{
			"missing title derived",
			`<xbel><bookmark href="file:///home/u/My%20Docs"/></xbel>`,
			model.List{{Location: "file:///home/u/My%20Docs", Label: "My Docs"}},
			0,
		},
		{
			"unknown elements and attributes ignored",
			`<xbel version="1.0" folded="no"><bookmark href="file:///home/u/Music" added="2020-01-01"><title>Music</title><desc>tunes</desc><unknown/></bookmark></xbel>`,
			model.List{{Location: "file:///home/u/Music", Label: "Music"}},
			0,
		},
		{
			"system items skipped",
			`<xbel>` +
				`<bookmark href="file:///"><title>Root</title><info><metadata owner="http://www.kde.org"><isSystemItem/></metadata></info></bookmark>` +
				`<bookmark href="file:///home/u/Music"><title>Music</title></bookmark>` +
				`</xbel>`,
			model.List{{Location: "file:///home/u/Music", Label: "Music"}},
			0,
		},
		{
			"malformed href skipped with warning",
			`<xbel><bookmark href="remote://x"/><bookmark href="file:///home/u/Music"><title>Music</title></bookmark></xbel>`,
			model.List{{Location: "file:///home/u/Music", Label: "Music"}},
			1,
		},
		{
			"duplicate location keeps last",
			`<xbel>` +
				`<bookmark href="file:///home/u/Music"><title>Old</title></bookmark>` +
				`<bookmark href="file:///home/u/Music"><title>New</title></bookmark>` +
				`</xbel>`,
			model.List{{Location: "file:///home/u/Music", Label: "New"}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings, err := c.Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %v, want %v", got, tt.want)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("Decode() warnings = %d, want %d", len(warnings), tt.wantWarnings)
			}
		})
	}
}

func TestCodec_Decode_MalformedDocument(t *testing.T) {
	c := New(baseDir)

	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"unclosed tag", `<xbel><bookmark href="file:///home/u/a">`},
		{"wrong root element", `<bookmarks><bookmark href="file:///home/u/a"/></bookmarks>`},
		{"not xml at all", "file:///home/u/a a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.Decode([]byte(tt.input))
			if !errors.Is(err, codec.ErrMalformedDocument) {
				t.Errorf("Decode() error = %v, want ErrMalformedDocument", err)
			}
		})
	}
}

func TestCodec_Encode(t *testing.T) {
	c := New(baseDir)

	list := model.List{{Location: "file:///home/u/Documents", Label: "Documents"}}
	data, err := c.Encode(list)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<!DOCTYPE xbel`,
		`href="file:///home/u/Documents"`,
		`<title>Documents</title>`,
		`owner="http://www.kde.org"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() output missing %q:\n%s", want, out)
		}
	}
}

func TestCodec_Rewrite(t *testing.T) {
	c := New(baseDir)

	existing := `<xbel version="1.0">` +
		`<bookmark href="file:///"><title>Root</title><info><metadata owner="http://www.kde.org"><isSystemItem/></metadata></info></bookmark>` +
		`<bookmark href="trash:/"><title>Trash</title><info><metadata owner="http://www.kde.org"><isSystemItem/></metadata></info></bookmark>` +
		`<bookmark href="file:///home/u/Old"><title>Old</title></bookmark>` +
		`</xbel>`

	list := model.List{{Location: "file:///home/u/Documents", Label: "Documents"}}
	data, err := c.Rewrite([]byte(existing), list)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`<isSystemItem></isSystemItem>`,
		`<title>Root</title>`,
		`<title>Trash</title>`,
		`<title>Documents</title>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Rewrite() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Old") {
		t.Errorf("Rewrite() kept a replaced user bookmark:\n%s", out)
	}

	// Desktop-owned entries come first, ahead of the user places.
	if strings.Index(out, "Trash") > strings.Index(out, "Documents") {
		t.Errorf("Rewrite() wrote user places before system items:\n%s", out)
	}
}

func TestCodec_Rewrite_FreshStore(t *testing.T) {
	c := New(baseDir)
	list := model.List{{Location: "file:///home/u/Documents", Label: "Documents"}}

	for _, existing := range [][]byte{nil, []byte("<xbel><bookmark")} {
		data, err := c.Rewrite(existing, list)
		if err != nil {
			t.Fatalf("Rewrite() error = %v", err)
		}
		encoded, err := c.Encode(list)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if string(data) != string(encoded) {
			t.Errorf("Rewrite() without a usable existing store differs from Encode():\n%s", data)
		}
	}
}

func TestCodec_Encode_Stable(t *testing.T) {
	c := New(baseDir)

	list := model.List{
		{Location: "file:///home/u/Documents", Label: "Documents"},
		{Location: "file:///home/u/My%20Docs", Label: "My Docs"},
	}

	first, err := c.Encode(list)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := c.Encode(list)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(first) != string(second) {
		t.Error("repeated Encode() calls produced different bytes")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := New(baseDir)

	lists := []model.List{
		{},
		{{Location: "file:///home/u/Documents", Label: "Documents"}},
		{
			{Location: "file:///home/u/My%20Docs", Label: "My Docs"},
			{Location: "file:///home/u/Music", Label: "Tunes"},
		},
	}

	for _, list := range lists {
		data, err := c.Encode(list)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		got, warnings, err := c.Decode(data)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if len(warnings) != 0 {
			t.Errorf("round trip produced warnings: %v", warnings)
		}
		if !reflect.DeepEqual(got, list) {
			t.Errorf("round trip = %v, want %v", got, list)
		}
	}
}
