package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > .env > YAML > defaults (via env-default tags).
// Variables from a .env file in the working directory (or DOTENV_PATH) are
// added to the environment without overriding variables already set.
// The YAML file path is determined by CONFIG_PATH env (fallback "./config.yaml").
// If the file does not exist and CONFIG_PATH was not set explicitly,
// configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config
	if err := read(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// storageOnly is the part of Config the maintenance CLI needs. It has no
// required secrets, so level and migration commands run without them.
type storageOnly struct {
	Environment string         `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	Database    DatabaseConfig `yaml:"database"`
	SQLite      SQLiteConfig   `yaml:"sqlite"`
	Log         LogConfig      `yaml:"log"`
	Trainer     TrainerConfig  `yaml:"trainer"`
}

// LoadStorage reads only the environment, storage, logging and trainer
// sections, from the same sources as Load.
func LoadStorage() (*Config, error) {
	var s storageOnly
	if err := read(&s); err != nil {
		return nil, err
	}
	if s.SQLite.Path == "" && s.Database.DSN == "" {
		return nil, errors.New("config: no storage configured")
	}

	return &Config{
		Environment: s.Environment,
		Database:    s.Database,
		SQLite:      s.SQLite,
		Log:         s.Log,
		Trainer:     s.Trainer,
	}, nil
}

func read(dst any) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, dst); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	} else if explicitPath {
		return fmt.Errorf("config: file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(dst); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}
	return nil
}

func loadDotEnv() error {
	path := os.Getenv("DOTENV_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil || (!explicitPath && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("config: dotenv %s: %w", path, err)
}
