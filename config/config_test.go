package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type nested struct {
	FolderName   string   `mapstructure:"folder_name"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Port          int    `mapstructure:"port"`
	Recordings    nested `mapstructure:"recordings"`
	Punctuation   bool   `mapstructure:"punctuation"`
	Ignored       string `mapstructure:"-"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name 'svc', got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys(reflect.TypeOf(testConfig{}), "")
	want := map[string]bool{
		"name":                     true,
		"environment":              true,
		"logging.level":            true,
		"port":                     true,
		"recordings.folder_name":   true,
		"recordings.allowed_types": true,
		"punctuation":              true,
	}
	got := make(map[string]bool, len(keys))
	for _, k := range keys {
		got[k] = true
	}
	for k := range want {
		if !got[k] {
			t.Errorf("expected key %q in %v", k, keys)
		}
	}
	if got["ignored"] || got["logging.servicename"] {
		t.Errorf("expected '-' fields to be skipped, got %v", keys)
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("recordings.folder_name"); got != "RECORDINGS_FOLDER_NAME" {
		t.Errorf("expected RECORDINGS_FOLDER_NAME, got %q", got)
	}
}

func TestLoadConfigWithYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := "name: scribe\nport: 3001\nrecordings:\n  folder_name: uploads\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RECORDINGS_FOLDER_NAME", "from-env")
	t.Setenv("RECORDINGS_ALLOWED_TYPES", "audio/wav,audio/ogg")

	var cfg testConfig
	err := LoadConfig("scribe", &cfg,
		WithConfigFile(path),
		WithEnvFile(filepath.Join(dir, "missing.env")),
		WithDefaults(map[string]any{"punctuation": true}),
	)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "scribe" || cfg.Port != 3001 {
		t.Errorf("expected yaml values, got name=%q port=%d", cfg.Name, cfg.Port)
	}
	if cfg.Recordings.FolderName != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Recordings.FolderName)
	}
	if len(cfg.Recordings.AllowedTypes) != 2 || cfg.Recordings.AllowedTypes[1] != "audio/ogg" {
		t.Errorf("expected comma-separated env list, got %v", cfg.Recordings.AllowedTypes)
	}
	if !cfg.Punctuation {
		t.Error("expected default punctuation=true")
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PORT=4000\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	var cfg testConfig
	if err := LoadConfig("scribe", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("expected port from .env, got %d", cfg.Port)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/config.yml": true,
		"./.env.scribe":       true,
		"./.env":              true,
	}}
	r := &Resolver{FileSystem: fs}
	got := r.ResolveFiles("scribe", LoaderConfig{})
	if got.ConfigFile != "./config/config.yml" {
		t.Errorf("unexpected config file %q", got.ConfigFile)
	}
	if got.EnvFile != "./.env.scribe" {
		t.Errorf("expected service-specific env file, got %q", got.EnvFile)
	}

	explicit := r.ResolveFiles("scribe", LoaderConfig{ConfigFile: "x.yml", EnvFile: "y.env"})
	if explicit.ConfigFile != "x.yml" || explicit.EnvFile != "y.env" {
		t.Errorf("expected explicit paths to win, got %+v", explicit)
	}
}

func TestBindEnvRejectsNonStruct(t *testing.T) {
	var n int
	if err := LoadConfig("scribe", &n, WithFileSystem(&mockFS{})); err == nil {
		t.Fatal("expected error for non-struct target")
	}
}
