package config

import (
	"path/filepath"
	"time"
)

// SpeedPreset names an animation speed factor.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// Config is the top-level cipherlab configuration, corresponding to .cipherlab.yml.
type Config struct {
	Port            int        `yaml:"port" koanf:"port"`
	AllowAllOrigins bool       `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DataDir         string     `yaml:"data_dir" koanf:"data_dir"`
	LessonsDir      string     `yaml:"lessons_dir" koanf:"lessons_dir"`
	DefaultCipher   string     `yaml:"default_cipher" koanf:"default_cipher"`
	Speed           float64    `yaml:"speed" koanf:"speed"`
	Repository      string     `yaml:"repository" koanf:"repository"`
	StarsEnabled    bool       `yaml:"stars_enabled" koanf:"stars_enabled"`
	Tour            TourConfig `yaml:"tour" koanf:"tour"`
}

// TourConfig holds guided tour settings.
type TourConfig struct {
	AutoStart   bool   `yaml:"auto_start" koanf:"auto_start"`
	StorageKey  string `yaml:"storage_key" koanf:"storage_key"`
	ClosePollMS int    `yaml:"close_poll_ms" koanf:"close_poll_ms"`
}

// DBPath is the location of the sqlite database inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "cipherlab.db")
}

// ClosePoll is the tour's wait-for-close poll interval. Zero disables
// polling.
func (t TourConfig) ClosePoll() time.Duration {
	return time.Duration(t.ClosePollMS) * time.Millisecond
}
