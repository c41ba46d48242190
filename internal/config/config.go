// Package config resolves runtime settings from an optional YAML file,
// a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env           string        `yaml:"env"`
	Port          string        `yaml:"port"`
	CardsSource   string        `yaml:"cards_source"`
	GraphSource   string        `yaml:"graph_source"`
	AllowedOrigin string        `yaml:"allowed_origin"`
	Threshold     float64       `yaml:"threshold"`
	Deduplicate   bool          `yaml:"deduplicate"`
	Verbose       bool          `yaml:"verbose"`
	LoadTimeout   time.Duration `yaml:"load_timeout"`
	ShutdownGrace time.Duration `yaml:"shutdown_timeout"`
}

func defaultConfig() *Config {
	return &Config{
		Env:           "local",
		Port:          ":8080",
		CardsSource:   "cards.json",
		GraphSource:   "graph_lasso_0.001.json",
		AllowedOrigin: "*",
		Threshold:     0.5,
		LoadTimeout:   10 * time.Second,
		ShutdownGrace: 15 * time.Second,
	}
}

// Load reads .env (if present), then the YAML file named by SYNERGY_CONFIG
// or ./config.yaml, then applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	path := strings.TrimSpace(os.Getenv("SYNERGY_CONFIG"))
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		c.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("CARDS_SOURCE")); v != "" {
		c.CardsSource = v
	}
	if v := strings.TrimSpace(os.Getenv("GRAPH_SOURCE")); v != "" {
		c.GraphSource = v
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGIN")); v != "" {
		c.AllowedOrigin = v
	}
	if v := strings.TrimSpace(os.Getenv("SIMILARITY_THRESHOLD")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SIMILARITY_THRESHOLD: %w", err)
		}
		c.Threshold = f
	}
	if v := strings.TrimSpace(os.Getenv("DEDUPLICATE_NEIGHBORS")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEDUPLICATE_NEIGHBORS: %w", err)
		}
		c.Deduplicate = b
	}
	if v := strings.TrimSpace(os.Getenv("LOAD_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LOAD_TIMEOUT: %w", err)
		}
		c.LoadTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownGrace = d
	}
	return nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	if strings.TrimSpace(c.CardsSource) == "" {
		return errors.New("config: cards_source is required")
	}
	if strings.TrimSpace(c.GraphSource) == "" {
		return errors.New("config: graph_source is required")
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("config: threshold must be in (0, 1], got %v", c.Threshold)
	}
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("config: load_timeout must be positive, got %s", c.LoadTimeout)
	}
	if c.ShutdownGrace <= 0 {
		return fmt.Errorf("config: shutdown_timeout must be positive, got %s", c.ShutdownGrace)
	}
	return nil
}

// IsProduction reports whether logs should use the production encoder.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}
