package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/config"
	"github.com/ziadkadry99/cipherlab/internal/db"
	"github.com/ziadkadry99/cipherlab/internal/flags"
	"github.com/ziadkadry99/cipherlab/internal/lessons"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `cipherlab init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openFlags opens the database under the data dir and returns the tour
// flag store on top of it.
func openFlags(cfg *config.Config) (*db.DB, *flags.Store, error) {
	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, flags.NewStore(database), nil
}

// loadLessons loads the embedded lessons plus any overrides from the
// configured directory.
func loadLessons(cfg *config.Config) (*lessons.Library, error) {
	lib, err := lessons.Load(cfg.LessonsDir)
	if err != nil {
		return nil, fmt.Errorf("loading lessons: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d lessons\n", len(lib.List()))
	}
	return lib, nil
}

// lookupCipher resolves a cipher id with a helpful error.
func lookupCipher(id string) (ciphers.Cipher, error) {
	c, ok := ciphers.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown cipher %q\nRun `cipherlab ciphers` to list them", id)
	}
	return c, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
