package util

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/placesync/placesync/internal/model"
)

// HomeDir returns the user's home directory
func HomeDir() string {
	return xdg.Home
}

// GTKBookmarksPath returns the GTK bookmarks file under the base directory
func GTKBookmarksPath(baseDir string) string {
	return filepath.Join(baseDir, ".config", "gtk-3.0", "bookmarks")
}

// KDEPlacesPath returns the KDE places file under the base directory
func KDEPlacesPath(baseDir string) string {
	return filepath.Join(baseDir, ".local", "share", "user-places.xbel")
}

// QtConfigPath returns the Qt config file under the base directory
func QtConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ".config", "QtProject.conf")
}

// StorePath returns the store file for a backend under the base directory.
// The relative locations are fixed; they are the interoperability contract
// with the desktop environments.
func StorePath(backend model.Backend, baseDir string) string {
	switch backend {
	case model.GTK:
		return GTKBookmarksPath(baseDir)
	case model.KDE:
		return KDEPlacesPath(baseDir)
	case model.Qt:
		return QtConfigPath(baseDir)
	default:
		return ""
	}
}

// PlacesyncConfigPath returns the directory holding placesync's own
// settings file, following the XDG base directory spec.
func PlacesyncConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "placesync")
}
