// ABOUTME: Tests for config loading, defaults, and backend selection
// ABOUTME: Isolates XDG directories per test with t.Setenv

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/feedboard/internal/storage"
)

func isolate(t *testing.T) (configHome, dataHome string) {
	t.Helper()
	configHome = t.TempDir()
	dataHome = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	return configHome, dataHome
}

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	configHome, dataHome := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetBackend() != storage.BackendYAML {
		t.Errorf("expected yaml backend, got %q", cfg.GetBackend())
	}
	if cfg.GetDataDir() != filepath.Join(dataHome, "feedboard") {
		t.Errorf("unexpected data dir %q", cfg.GetDataDir())
	}
	if _, err := os.Stat(filepath.Join(configHome, "feedboard", "config.json")); err != nil {
		t.Errorf("expected config file to be written: %v", err)
	}
}

func TestLoad_FirstRunKeepsExistingSQLite(t *testing.T) {
	_, dataHome := isolate(t)
	dir := filepath.Join(dataHome, "feedboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, storage.SQLiteFilename), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetBackend() != storage.BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.GetBackend())
	}
}

func TestLoad_ReadsSavedConfig(t *testing.T) {
	isolate(t)

	want := &Config{Backend: storage.BackendSQLite, DataDir: "/tmp/fb", HTTPTimeout: 5, LogLevel: "debug"}
	if err := want.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.GetHTTPTimeout() != 5*time.Second {
		t.Errorf("unexpected timeout %v", got.GetHTTPTimeout())
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	configHome, _ := isolate(t)
	path := filepath.Join(configHome, "feedboard", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"backend":"markdown"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestGetters_Defaults(t *testing.T) {
	cfg := &Config{}
	if cfg.GetHTTPTimeout() != DefaultHTTPTimeout {
		t.Errorf("unexpected default timeout %v", cfg.GetHTTPTimeout())
	}
	if cfg.GetLogLevel() != DefaultLogLevel {
		t.Errorf("unexpected default log level %q", cfg.GetLogLevel())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("ExpandPath(~/data) = %q", got)
	}
	if got := ExpandPath("/abs"); got != "/abs" {
		t.Errorf("ExpandPath(/abs) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{storage.BackendYAML, storage.BackendSQLite} {
		s, err := OpenBackend(backend, dir)
		if err != nil {
			t.Fatalf("OpenBackend(%q) failed: %v", backend, err)
		}
		s.Close()
	}
	if _, err := OpenBackend("markdown", dir); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"sqlite debug", Config{Backend: "sqlite", LogLevel: "DEBUG"}, false},
		{"unknown backend", Config{Backend: "markdown"}, true},
		{"unknown log level", Config{LogLevel: "chatty"}, true},
		{"negative timeout", Config{HTTPTimeout: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DefaultDataDir(); got != filepath.Join("/xdg/data", "feedboard") {
		t.Errorf("DefaultDataDir() = %q", got)
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := GetConfigPath(); got != filepath.Join("/xdg/config", "feedboard", "config.json") {
		t.Errorf("GetConfigPath() = %q", got)
	}
}
