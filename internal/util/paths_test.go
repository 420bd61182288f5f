package util

import (
	"path/filepath"
	"testing"

	"github.com/placesync/placesync/internal/model"
)

func TestStorePath(t *testing.T) {
	base := "/home/u"

	tests := []struct {
		name    string
		backend model.Backend
		want    string
	}{
		{"gtk", model.GTK, filepath.Join(base, ".config", "gtk-3.0", "bookmarks")},
		{"kde", model.KDE, filepath.Join(base, ".local", "share", "user-places.xbel")},
		{"qt", model.Qt, filepath.Join(base, ".config", "QtProject.conf")},
		{"unknown", model.Backend("other"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StorePath(tt.backend, base); got != tt.want {
				t.Errorf("StorePath(%q) = %q, want %q", tt.backend, got, tt.want)
			}
		})
	}
}

func TestStorePath_RelativeToBase(t *testing.T) {
	a := StorePath(model.GTK, "/home/a")
	b := StorePath(model.GTK, "/home/b")
	if a == b {
		t.Errorf("store paths should differ per base directory, both %q", a)
	}
}
