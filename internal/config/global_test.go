package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	// Save and restore XDG_CONFIG_HOME
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/bibfmt/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	// Empty XDG_CONFIG_HOME falls back to ~/.config
	os.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "bibfmt", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

// writeGlobalConfig points XDG_CONFIG_HOME at a temp dir holding content.
func writeGlobalConfig(t *testing.T, content string) {
	t.Helper()

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvShortDOIURL, "")
	t.Setenv(EnvDOICache, "")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}
	if *cfg != (Config{}) {
		t.Errorf("LoadGlobalConfig() = %+v, want empty config", *cfg)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv(EnvShortDOIURL, "")
	t.Setenv(EnvDOICache, "")
	writeGlobalConfig(t, `
indent: tab
align: 20
delimiter_type: quotes
doi_url_type: short
page_range_separator: "-"
sort_by_bibkey: true
custom_abbrev: ~/bib/abbrev.yaml
shortdoi_url: http://localhost:9999
`)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	if cfg.Indent != "tab" {
		t.Errorf("Indent = %q, want tab", cfg.Indent)
	}
	if cfg.Align == nil || *cfg.Align != 20 {
		t.Errorf("Align = %v, want 20", cfg.Align)
	}
	if cfg.DelimiterType != "quotes" {
		t.Errorf("DelimiterType = %q, want quotes", cfg.DelimiterType)
	}
	if cfg.DOIURLType != "short" {
		t.Errorf("DOIURLType = %q, want short", cfg.DOIURLType)
	}
	if cfg.PageRangeSeparator != "-" {
		t.Errorf("PageRangeSeparator = %q, want -", cfg.PageRangeSeparator)
	}
	if !cfg.SortByBibkey {
		t.Error("SortByBibkey = false, want true")
	}
	if cfg.ShortDOIURL != "http://localhost:9999" {
		t.Errorf("ShortDOIURL = %q, want http://localhost:9999", cfg.ShortDOIURL)
	}

	// Check tilde expansion
	home, _ := os.UserHomeDir()
	wantPath := filepath.Join(home, "bib/abbrev.yaml")
	if cfg.CustomAbbrev != wantPath {
		t.Errorf("CustomAbbrev = %q, want %q", cfg.CustomAbbrev, wantPath)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	writeGlobalConfig(t, "shortdoi_url: http://from-config\ndoi_cache: /from/config.db\n")
	t.Setenv(EnvShortDOIURL, "http://from-env")
	t.Setenv(EnvDOICache, "/from/env.db")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.ShortDOIURL != "http://from-env" {
		t.Errorf("ShortDOIURL = %q, want http://from-env", cfg.ShortDOIURL)
	}
	if cfg.DOICache != "/from/env.db" {
		t.Errorf("DOICache = %q, want /from/env.db", cfg.DOICache)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	writeGlobalConfig(t, "indent: [unclosed")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestLoadGlobalConfig_Cached(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	writeGlobalConfig(t, "indent: \"4\"\n")

	first, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	// A changed environment is not seen until the cache is reset.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	second, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if first != second {
		t.Error("LoadGlobalConfig() did not return the cached config")
	}
}
