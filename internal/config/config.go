package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
)

// DefaultPath is the configuration file used when --config is not given.
const DefaultPath = ".cipherlab.yml"

const envPrefix = "CIPHERLAB_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CIPHERLAB_*). A double underscore
// separates nested keys: CIPHERLAB_TOUR__AUTO_START -> tour.auto_start.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if _, ok := ciphers.Lookup(c.DefaultCipher); !ok {
		return fmt.Errorf("invalid default_cipher %q: must be one of %s", c.DefaultCipher, strings.Join(ciphers.IDs(), ", "))
	}

	if c.Speed <= 0 || c.Speed > 10 {
		return fmt.Errorf("speed must be greater than 0 and at most 10")
	}

	if c.StarsEnabled && strings.Count(c.Repository, "/") != 1 {
		return fmt.Errorf("invalid repository %q: must be owner/name", c.Repository)
	}

	if c.Tour.StorageKey == "" {
		return fmt.Errorf("tour.storage_key is required")
	}

	if c.Tour.ClosePollMS < 0 {
		return fmt.Errorf("tour.close_poll_ms must be non-negative")
	}

	return nil
}
