// Package config handles the artmd global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Global is the configuration stored in ~/.config/artmd/config.yml.
type Global struct {
	BibPath   string `yaml:"bib_path,omitempty"`   // default bibliography file
	StorePath string `yaml:"store_path,omitempty"` // bibliography store database
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "artmd"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// StoreFile is the bibliography store file name.
	StoreFile = "bib.db"
)

// globalCache caches the loaded global config.
var globalCache *Global

// Path returns the global config file path. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/artmd/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load reads the global configuration. A missing file yields an empty
// config, not an error.
func Load() (*Global, error) {
	if globalCache != nil {
		return globalCache, nil
	}

	path := Path()
	if path == "" {
		return &Global{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Global{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg Global
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	cfg.BibPath = ExpandTilde(cfg.BibPath)
	cfg.StorePath = ExpandTilde(cfg.StorePath)

	globalCache = &cfg
	return &cfg, nil
}

// ResetCache clears the cached global config. Useful for testing.
func ResetCache() {
	globalCache = nil
}

// StoreLocation returns the configured store path, or the default under
// XDG_DATA_HOME (~/.local/share/artmd/bib.db).
func (g *Global) StoreLocation() string {
	if g.StorePath != "" {
		return g.StorePath
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return StoreFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, GlobalConfigDir, StoreFile)
}

// ExpandTilde expands a leading "~/" to the user home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
