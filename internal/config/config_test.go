package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PAGERDECK_CONFIG",
		"PAGERDECK_STORAGE_DB_PATH",
		"PAGERDECK_LOG_LEVEL",
		"PAGERDECK_LOG_FILE",
		"PAGERDECK_REGISTRY_CAPACITY",
		"PAGERDECK_PAGER_OFFSCREEN_LIMIT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_UsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.DBPath != "pagerdeck.db" {
		t.Fatalf("unexpected DB path: %s", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "none" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if cfg.Registry.Capacity != 64 {
		t.Fatalf("unexpected registry capacity: %d", cfg.Registry.Capacity)
	}
	if cfg.Pager.OffscreenLimit != 1 {
		t.Fatalf("unexpected offscreen limit: %d", cfg.Pager.OffscreenLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PAGERDECK_STORAGE_DB_PATH", "/tmp/other.db")
	t.Setenv("PAGERDECK_REGISTRY_CAPACITY", "8")
	t.Setenv("PAGERDECK_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.DBPath != "/tmp/other.db" || cfg.Registry.Capacity != 8 || cfg.Log.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pagerdeck.toml")
	content := "[storage]\ndb_path = \"from-file.db\"\n\n[pager]\noffscreen_limit = 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.DBPath != "from-file.db" || cfg.Pager.OffscreenLimit != 2 {
		t.Fatalf("config file not applied: %+v", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Storage:  StorageConfig{DBPath: "pagerdeck.db"},
		Log:      LogConfig{Level: "none"},
		Registry: RegistryConfig{Capacity: 4},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(c *Config){
		"empty db path":      func(c *Config) { c.Storage.DBPath = "" },
		"bad log level":      func(c *Config) { c.Log.Level = "loud" },
		"log without file":   func(c *Config) { c.Log.Level = "debug" },
		"zero capacity":      func(c *Config) { c.Registry.Capacity = 0 },
		"negative offscreen": func(c *Config) { c.Pager.OffscreenLimit = -1 },
	}
	for name, mutate := range cases {
		c := valid
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
