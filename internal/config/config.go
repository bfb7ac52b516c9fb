// Package config loads wellflow settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration. Sources, highest priority first:
//  1. explicit path passed to Load;
//  2. WELLFLOW_CONFIG environment variable;
//  3. environment variables only (after an optional .env file is loaded).
type Config struct {
	DBPath    string      `yaml:"db_path"    env:"WELLFLOW_DB"`
	BackupDir string      `yaml:"backup_dir" env:"WELLFLOW_BACKUP_DIR"`
	Log       LogConfig   `yaml:"log"`
	Clock     ClockConfig `yaml:"clock"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"WELLFLOW_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"WELLFLOW_LOG_FORMAT" env-default:"text"`
}

// ClockConfig sets the watch loop cadence.
type ClockConfig struct {
	Refresh       time.Duration `yaml:"refresh"        env:"WELLFLOW_REFRESH"        env-default:"1s"`
	BoundaryCheck time.Duration `yaml:"boundary_check" env:"WELLFLOW_BOUNDARY_CHECK" env-default:"1m"`
}

// EnvFile is loaded, if present, before the environment is read. Variables
// already set in the process win.
var EnvFile = ".env"

func Load(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	if path == "" {
		path = os.Getenv("WELLFLOW_CONFIG")
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json")
	}
	if c.Clock.Refresh <= 0 {
		return fmt.Errorf("clock.refresh must be > 0")
	}
	if c.Clock.BoundaryCheck < c.Clock.Refresh {
		return fmt.Errorf("clock.boundary_check must be >= clock.refresh")
	}
	return nil
}
