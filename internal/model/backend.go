package model

import "fmt"

// Backend represents a supported desktop-environment bookmark store
type Backend string

const (
	GTK Backend = "gtk"
	KDE Backend = "kde"
	Qt  Backend = "qt"
)

// IsValid returns true if the backend is recognized
func (b Backend) IsValid() bool {
	switch b {
	case GTK, KDE, Qt:
		return true
	default:
		return false
	}
}

// AllBackends returns all supported backends in fixed order
func AllBackends() []Backend {
	return []Backend{GTK, KDE, Qt}
}

// ParseBackend converts a user-supplied string into a Backend.
func ParseBackend(s string) (Backend, error) {
	b := Backend(s)
	if !b.IsValid() {
		return "", fmt.Errorf("unknown backend %q (supported: gtk, kde, qt)", s)
	}
	return b, nil
}
