package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "bibfmt"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// EnvShortDOIURL overrides shortdoi_url.
	EnvShortDOIURL = "BIBFMT_SHORTDOI_URL"
	// EnvDOICache overrides doi_cache.
	EnvDOICache = "BIBFMT_DOI_CACHE"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *Config

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibfmt/config.yml.
func GlobalConfigPath() string {
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

// LoadGlobalConfig loads the global configuration file and applies
// environment overrides. Returns an empty config (not an error) if the file
// doesn't exist.
func LoadGlobalConfig() (*Config, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg, err := LoadFile(GlobalConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	globalConfigCache = cfg
	return cfg, nil
}

// LoadFile reads a config file. A missing file or empty path yields an empty
// config.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	cfg.CustomAbbrev = ExpandPath(cfg.CustomAbbrev)
	cfg.Dictionary = ExpandPath(cfg.Dictionary)
	cfg.DOICache = ExpandPath(cfg.DOICache)

	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvShortDOIURL); v != "" {
		c.ShortDOIURL = v
	}
	if v := os.Getenv(EnvDOICache); v != "" {
		c.DOICache = ExpandPath(v)
	}
}
