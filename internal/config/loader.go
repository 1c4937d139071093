package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "config.yaml"

// Load reads the file named by CONFIG_PATH, or ./config.yaml when the
// variable is unset. See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom reads the YAML file at path, applies environment overrides and
// validates the result. Values resolve as env, then file, then env-default.
// A missing file is an error only when path was given; with an empty path a
// missing ./config.yaml leaves env and defaults.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	err := readFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && path == "" {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	if path == "" {
		path = defaultPath
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
