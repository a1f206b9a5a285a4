package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the settings the CLI composes its services from.
type Config struct {
	// Store selects the backend: "sqlite" or "memory".
	Store string `yaml:"store" toml:"store"`
	// DBPath is the SQLite database file. Ignored for the memory store.
	DBPath string `yaml:"db_path" toml:"db_path"`
	// DefaultTaskID is the task "todo list" shows when no --task is given.
	DefaultTaskID string `yaml:"default_task" toml:"default_task"`
	LogLevel      string `yaml:"log_level" toml:"log_level"`
	// LogFile receives JSON logs. Empty logs to stderr.
	LogFile string `yaml:"log_file" toml:"log_file"`
	// Seed fills an empty memory store with demo data.
	Seed bool `yaml:"seed" toml:"seed"`
}

// Default returns a Config with sensible defaults. The database lives under
// ~/.cadence when the home directory is known.
func Default() Config {
	dbPath := "cadence.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".cadence", "cadence.db")
	}
	return Config{
		Store:         StoreSQLite,
		DBPath:        dbPath,
		DefaultTaskID: "task-1",
		LogLevel:      "warn",
	}
}

// DefaultPath returns the config file looked up when none is given:
// $CADENCE_CONFIG, else ~/.cadence/config.yaml.
func DefaultPath() string {
	if v := os.Getenv("CADENCE_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cadence", "config.yaml")
}

// Load reads configuration from path, YAML or TOML by extension, then applies
// environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q (use .yaml or .toml)", filepath.Ext(path))
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CADENCE_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("CADENCE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("CADENCE_TASK"); v != "" {
		c.DefaultTaskID = v
	}
	if v := os.Getenv("CADENCE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CADENCE_SEED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Seed = b
		}
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("db_path is required for the sqlite store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("store: unknown kind %q (want %s or %s)", c.Store, StoreSQLite, StoreMemory))
	}

	if c.DefaultTaskID == "" {
		errs = append(errs, errors.New("default_task must not be empty"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}
