// Package config loads server configuration from a file or the environment.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the server configuration. The adapter itself never reads the
// environment; everything it needs is handed to it from here.
type Config struct {
	Addr       string `yaml:"addr" env:"SERVER_ADDR" env-default:":8080"`
	DBPath     string `yaml:"db_path" env:"DB_PATH" env-default:"./data"`
	AccessKey  string `yaml:"access_key" env:"CURRENCY_CONVERTER_ACCESS_KEY"`
	Enterprise bool   `yaml:"enterprise" env:"CURRENCY_CONVERTER_ENTERPRISE" env-default:"false"`
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
}

// Load reads configuration from the file named by CONFIG_PATH when set,
// falling back to environment variables alone.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	return &cfg, nil
}
