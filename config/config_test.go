package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Root != "" {
		t.Errorf("expected empty default root, got %s", cfg.Root)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected default log level warn, got %s", cfg.LogLevel)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected default debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Metrics.File != "" {
		t.Errorf("expected metrics disabled by default, got %s", cfg.Metrics.File)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "debug level",
			modify:  func(c *Config) { c.LogLevel = "DEBUG" },
			wantErr: false,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: true,
		},
		{
			name:    "zero debounce",
			modify:  func(c *Config) { c.Watch.Debounce = 0 },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
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
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"Warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", name, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
root: "game"
log_level: debug
metrics:
  file: "/var/lib/node_exporter/assetcheck.prom"
watch:
  debounce: 1s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Root != filepath.Join(tmpDir, "game") {
		t.Errorf("expected root relative to config file, got %s", cfg.Root)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.Metrics.File != "/var/lib/node_exporter/assetcheck.prom" {
		t.Errorf("expected metrics file, got %s", cfg.Metrics.File)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(tmpDir, "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	badPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("watch: [unterminated"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFromFile(badPath); err == nil {
		t.Error("expected parse error, got none")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Root: "/override/path",
		Metrics: MetricsConfig{
			File: "out.prom",
		},
	}

	base.Merge(override)

	if base.Root != "/override/path" {
		t.Errorf("expected root /override/path, got %s", base.Root)
	}
	if base.Metrics.File != "out.prom" {
		t.Errorf("expected metrics file out.prom, got %s", base.Metrics.File)
	}
	// Log level and debounce should remain from base since override didn't set them
	if base.LogLevel != "warn" {
		t.Errorf("expected log level to remain default, got %s", base.LogLevel)
	}
	if base.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce to remain default, got %v", base.Watch.Debounce)
	}

	base.Merge(nil)
	if base.Root != "/override/path" {
		t.Errorf("nil merge changed root to %s", base.Root)
	}
}

// newTestLoader returns a loader rooted in fake home and working directories.
func newTestLoader(home, cwd, gitRoot string) *Loader {
	l := NewLoader(nil)
	l.homeDir = func() (string, error) { return home, nil }
	l.workDir = func() (string, error) { return cwd, nil }
	l.gitRoot = func(string) string { return gitRoot }
	return l
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoaderLayering(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	cwd := filepath.Join(project, "tools", "scripts")
	if err := os.MkdirAll(cwd, 0755); err != nil {
		t.Fatal(err)
	}

	writeConfig(t, filepath.Join(home, UserConfigDir, UserConfigFile), "log_level: info\nwatch:\n  debounce: 2s\n")
	writeConfig(t, filepath.Join(project, ProjectConfigFile), "log_level: debug\nroot: .\n")

	cfg, err := newTestLoader(home, cwd, "").Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected project config to win, got %s", cfg.LogLevel)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected user debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Root != project {
		t.Errorf("expected root %s, got %s", project, cfg.Root)
	}
}

func TestLoaderExplicitPath(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, UserConfigDir, UserConfigFile), "log_level: info\n")

	explicit := filepath.Join(t.TempDir(), "ci.yaml")
	writeConfig(t, explicit, "metrics:\n  file: ci.prom\n")

	cfg, err := newTestLoader(home, t.TempDir(), "").Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("user config should be ignored with an explicit path, got %s", cfg.LogLevel)
	}
	if cfg.Metrics.File != "ci.prom" {
		t.Errorf("expected metrics file ci.prom, got %s", cfg.Metrics.File)
	}

	if _, err := newTestLoader(home, t.TempDir(), "").Load(filepath.Join(home, "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoaderRejectsInvalidConfig(t *testing.T) {
	cwd := t.TempDir()
	explicit := filepath.Join(cwd, ProjectConfigFile)
	writeConfig(t, explicit, "log_level: chatty\n")

	if _, err := newTestLoader(t.TempDir(), cwd, "").Load(explicit); err == nil {
		t.Error("expected validation error")
	}
}

func TestResolveRoot(t *testing.T) {
	cwd := t.TempDir()
	gitRoot := t.TempDir()

	tests := []struct {
		name     string
		flagRoot string
		cfgRoot  string
		gitRoot  string
		want     string
	}{
		{name: "flag wins", flagRoot: gitRoot, cfgRoot: "/elsewhere", gitRoot: "/git", want: gitRoot},
		{name: "config root", cfgRoot: cwd, gitRoot: "/git", want: cwd},
		{name: "git root", gitRoot: gitRoot, want: gitRoot},
		{name: "working directory", want: cwd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Root = tt.cfgRoot

			got, err := newTestLoader(t.TempDir(), cwd, tt.gitRoot).ResolveRoot(tt.flagRoot, cfg)
			if err != nil {
				t.Fatalf("ResolveRoot() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveRoot() = %s, want %s", got, tt.want)
			}
		})
	}
}
