package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DefaultCipher != "caesar" {
		t.Errorf("expected default cipher %q, got %q", "caesar", cfg.DefaultCipher)
	}
	if cfg.Speed != 1.0 {
		t.Errorf("expected default speed 1, got %f", cfg.Speed)
	}
	if !cfg.Tour.AutoStart {
		t.Error("expected tour auto start by default")
	}
	if cfg.Tour.ClosePoll() != 200*time.Millisecond {
		t.Errorf("expected 200ms close poll, got %v", cfg.Tour.ClosePoll())
	}
	if cfg.DBPath() != filepath.Join(".cipherlab", "cipherlab.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cipherlab.yml")

	original := DefaultConfig()
	original.Port = 9000
	original.DefaultCipher = "hill"
	original.Speed = 0.5
	original.LessonsDir = "my-lessons"
	original.StarsEnabled = false
	original.Tour.AutoStart = false
	original.Tour.StorageKey = "custom"

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.DefaultCipher != original.DefaultCipher {
		t.Errorf("default_cipher: got %q, want %q", loaded.DefaultCipher, original.DefaultCipher)
	}
	if loaded.Speed != original.Speed {
		t.Errorf("speed: got %f, want %f", loaded.Speed, original.Speed)
	}
	if loaded.LessonsDir != original.LessonsDir {
		t.Errorf("lessons_dir: got %q, want %q", loaded.LessonsDir, original.LessonsDir)
	}
	if loaded.StarsEnabled {
		t.Error("stars_enabled: got true, want false")
	}
	if loaded.Tour.AutoStart {
		t.Error("tour.auto_start: got true, want false")
	}
	if loaded.Tour.StorageKey != "custom" {
		t.Errorf("tour.storage_key: got %q", loaded.Tour.StorageKey)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("port: got %d", cfg.Port)
	}
	if cfg.DefaultCipher != "caesar" || !cfg.Tour.AutoStart {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("port: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CIPHERLAB_DEFAULT_CIPHER", "vigenere")
	t.Setenv("CIPHERLAB_TOUR__STORAGE_KEY", "from-env")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultCipher != "vigenere" {
		t.Errorf("env override failed: got %q, want %q", loaded.DefaultCipher, "vigenere")
	}
	if loaded.Tour.StorageKey != "from-env" {
		t.Errorf("nested env override failed: got %q", loaded.Tour.StorageKey)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CIPHERLAB_PORT", "port"},
		{"CIPHERLAB_ALLOW_ALL_ORIGINS", "allow_all_origins"},
		{"CIPHERLAB_TOUR__AUTO_START", "tour.auto_start"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"unknown cipher", func(c *Config) { c.DefaultCipher = "enigma" }, true},
		{"zero speed", func(c *Config) { c.Speed = 0 }, true},
		{"huge speed", func(c *Config) { c.Speed = 11 }, true},
		{"bad repository", func(c *Config) { c.Repository = "cipherlab" }, true},
		{"bad repository without stars", func(c *Config) { c.Repository = ""; c.StarsEnabled = false }, false},
		{"empty storage key", func(c *Config) { c.Tour.StorageKey = "" }, true},
		{"negative poll", func(c *Config) { c.Tour.ClosePollMS = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetSpeed(t *testing.T) {
	if GetSpeed(SpeedSlow) != 2.0 {
		t.Errorf("slow = %f", GetSpeed(SpeedSlow))
	}
	if GetSpeed(SpeedFast) != 0.5 {
		t.Errorf("fast = %f", GetSpeed(SpeedFast))
	}
	// Unknown preset falls back.
	if GetSpeed("warp") != 1.0 {
		t.Errorf("fallback = %f", GetSpeed("warp"))
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"80", "8080", "65535"} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "abc", "0", "65536"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q) accepted", s)
		}
	}
}
