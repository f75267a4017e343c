package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration sourced from an optional YAML file and env vars.
type Config struct {
	DatabaseURL   string `yaml:"database_url"`
	Debug         bool   `yaml:"debug"`
	SessionSecret string `yaml:"session_secret"`
	LogDir        string `yaml:"log_dir"`
}

// Load reads GROCERY_CONFIG (when set) and then the environment, which wins.
func Load() (Config, error) {
	var cfg Config
	if path := strings.TrimSpace(os.Getenv("GROCERY_CONFIG")); path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	cfg.DatabaseURL = fallback(os.Getenv("DATABASE_URL"), strings.TrimSpace(cfg.DatabaseURL))
	cfg.SessionSecret = fallback(os.Getenv("SESSION_SECRET"), strings.TrimSpace(cfg.SessionSecret))
	cfg.LogDir = fallback(os.Getenv("LOG_DIR"), strings.TrimSpace(cfg.LogDir))

	if raw := strings.TrimSpace(os.Getenv("GROCERY_DEBUG")); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("GROCERY_DEBUG: %w", err)
		}
		cfg.Debug = debug
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func loadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
