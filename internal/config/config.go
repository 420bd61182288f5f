// Package config provides configuration management for placesync.
// It supports YAML and TOML settings files, environment variables, and
// sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/placesync/placesync/internal/model"
	"github.com/placesync/placesync/internal/util"
)

// Config represents the complete placesync configuration.
type Config struct {
	// Stores overrides the store file path per backend
	Stores StoresConfig `yaml:"stores" toml:"stores"`

	// Sync configures default synchronization behavior
	Sync SyncConfig `yaml:"sync" toml:"sync"`
}

// StoresConfig holds per-backend store path overrides. Empty values
// fall back to the fixed well-known locations under the base directory.
type StoresConfig struct {
	GTK string `yaml:"gtk,omitempty" toml:"gtk,omitempty"`
	KDE string `yaml:"kde,omitempty" toml:"kde,omitempty"`
	Qt  string `yaml:"qt,omitempty" toml:"qt,omitempty"`
}

// SyncConfig holds synchronization settings.
type SyncConfig struct {
	// DefaultSource is the backend used when no backend argument is
	// given on the command line.
	DefaultSource string `yaml:"default_source,omitempty" toml:"default_source,omitempty"`
	// BaseDir overrides the base directory the store paths resolve
	// under. Defaults to the user's home directory.
	BaseDir string `yaml:"base_dir,omitempty" toml:"base_dir,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// PathOverrides returns the configured store paths keyed by backend,
// omitting backends without an override.
func (c *Config) PathOverrides() map[model.Backend]string {
	paths := make(map[model.Backend]string)
	if c.Stores.GTK != "" {
		paths[model.GTK] = c.Stores.GTK
	}
	if c.Stores.KDE != "" {
		paths[model.KDE] = c.Stores.KDE
	}
	if c.Stores.Qt != "" {
		paths[model.Qt] = c.Stores.Qt
	}
	return paths
}

// Settings file names, tried in order.
var configFileNames = []string{"config.yaml", "config.toml"}

// FilePath returns the path of the first settings file that exists, or
// the default YAML path when none does.
func FilePath() string {
	dir := util.PlacesyncConfigPath()
	for _, name := range configFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, configFileNames[0])
}

// Load loads the configuration from the settings file, merging with
// defaults. A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	return LoadFromPath(FilePath())
}

// LoadFromPath loads configuration from a specific path. The format is
// chosen by extension: .toml decodes as TOML, anything else as YAML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is the user's own settings file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// applyEnvironment applies environment variable overrides. Variables
// follow the pattern PLACESYNC_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("PLACESYNC_SYNC_DEFAULT_SOURCE"); v != "" {
		c.Sync.DefaultSource = v
	}
	if v := os.Getenv("PLACESYNC_SYNC_BASE_DIR"); v != "" {
		c.Sync.BaseDir = v
	}
	if v := os.Getenv("PLACESYNC_STORES_GTK"); v != "" {
		c.Stores.GTK = v
	}
	if v := os.Getenv("PLACESYNC_STORES_KDE"); v != "" {
		c.Stores.KDE = v
	}
	if v := os.Getenv("PLACESYNC_STORES_QT"); v != "" {
		c.Stores.Qt = v
	}
}
