package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config.yaml"

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing priority. A .env file (or ENV_FILE) is applied
// to the environment first without overriding variables already set.
//
// path wins over CONFIG_PATH. When neither is given, ./config.yaml is used if
// present; a missing file is an error only when it was named explicitly.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	path, explicit := resolvePath(path)

	var cfg Config
	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Describe lists every environment variable the configuration reads, with
// its default and description.
func Describe() (string, error) {
	header := "Environment variables (override config.yaml):"
	return cleanenv.GetDescription(&Config{}, &header)
}

func resolvePath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env, true
	}
	return defaultConfigPath, false
}

func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("config: env file %s: %w", path, err)
}
