package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Name != "Patina & Weathering MCP" {
		t.Errorf("server name = %q", cfg.Server.Name)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v, want info/text", cfg.Log)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("metrics should be disabled by default, got %q", cfg.Metrics.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "missing server name", modify: func(c *Config) { c.Server.Name = "" }, wantErr: true},
		{name: "unknown level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "unknown format", modify: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "json format", modify: func(c *Config) { c.Log.Format = "json" }},
		{name: "warning alias", modify: func(c *Config) { c.Log.Level = "WARNING" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patina.yaml")
	content := `
log:
  level: debug
metrics:
  addr: ":9464"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("format should keep default text, got %q", cfg.Log.Format)
	}
	if cfg.Metrics.Addr != ":9464" {
		t.Errorf("metrics addr = %q", cfg.Metrics.Addr)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{
		Log:     LogConfig{Format: "json"},
		Catalog: CatalogConfig{Path: "/tmp/space.yaml"},
	})
	cfg.Merge(nil)

	want := DefaultConfig()
	want.Log.Format = "json"
	want.Catalog.Path = "/tmp/space.yaml"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("merged config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patina.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\n  format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	env := map[string]string{
		EnvLogLevel:    "error",
		EnvMetricsAddr: "127.0.0.1:9000",
	}
	l := NewLoader(nil)
	l.getenv = func(k string) string { return env[k] }

	cfg, err := l.Load(path, &Config{Metrics: MetricsConfig{Addr: ":9100"}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("env should override file level, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("file format should survive, got %q", cfg.Log.Format)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("flag override should win, got %q", cfg.Metrics.Addr)
	}
}

func TestLoader_RejectsInvalid(t *testing.T) {
	l := NewLoader(nil)
	l.getenv = func(k string) string {
		if k == EnvLogFormat {
			return "yaml"
		}
		return ""
	}
	if _, err := l.Load("", nil); err == nil {
		t.Fatal("expected validation error for log format yaml")
	}
}
