package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
store:
  path: "test.json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Store.Path == "" {
		t.Error("store path should be set")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_appliesDefaults(t *testing.T) {
	path := writeConfig(t, "debug: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("embedding model default = %s", cfg.Embedding.Model)
	}
	if cfg.Generation.Model != "gpt-4o-mini" {
		t.Errorf("generation model default = %s", cfg.Generation.Model)
	}
	if cfg.Generation.Temperature != 0.2 || cfg.Generation.MaxTokens != 700 {
		t.Errorf("unexpected generation defaults: %+v", cfg.Generation)
	}
	if cfg.Ask.DefaultTopK != 3 {
		t.Errorf("default top k = %d, want 3", cfg.Ask.DefaultTopK)
	}
	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("unexpected default extensions: %v", cfg.Watch.Extensions)
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	path := writeConfig(t, `
store:
  path: "./data/store.json"
watch:
  directories: ["./docs"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Dir(path)
	wantStore := filepath.Join(dir, "data", "store.json")
	if cfg.Store.Path != wantStore {
		t.Errorf("store path = %s, want %s", cfg.Store.Path, wantStore)
	}
	wantWatch := filepath.Join(dir, "docs")
	if cfg.Watch.Directories[0] != wantWatch {
		t.Errorf("watch dir = %s, want %s", cfg.Watch.Directories[0], wantWatch)
	}
}

func TestLoad_apiKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	path := writeConfig(t, `
generation:
  api_key: "explicit-key"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Embedding.APIKey != "env-key" {
		t.Errorf("embedding api key = %s, want env fallback", cfg.Embedding.APIKey)
	}
	if cfg.Generation.APIKey != "explicit-key" {
		t.Errorf("generation api key = %s, config value must win", cfg.Generation.APIKey)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Watch.Directories = []string{filepath.Join(dir, "docs")}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Watch.Directories) != 1 || loaded.Watch.Directories[0] != cfg.Watch.Directories[0] {
		t.Errorf("watch directories not preserved: %v", loaded.Watch.Directories)
	}
}

func TestRecursiveOrDefault(t *testing.T) {
	w := &WatchConfig{}
	if !w.RecursiveOrDefault() {
		t.Error("recursive should default to true")
	}
	f := false
	w.Recursive = &f
	if w.RecursiveOrDefault() {
		t.Error("explicit false must be honored")
	}
}
