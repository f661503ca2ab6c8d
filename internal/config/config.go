package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the Uptime Kuma instance queried when nothing overrides it.
	DefaultBaseURL = "https://uptime.cloud.rcfortress.site"
	// DefaultSlug selects the status page on that instance.
	DefaultSlug = "main"

	envBaseURL = "KUMA_BASE_URL"
	envSlug    = "KUMA_SLUG"
)

// Config selects which status page the reporter reads.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Slug    string `yaml:"slug"`
}

// DefaultConfig returns the compiled-in instance and slug.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Slug:    DefaultSlug,
	}
}

// Load reads configuration from a yaml file and applies environment overrides.
// An empty path or a missing file falls back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := loadDotEnv(); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Slug = strings.TrimSpace(cfg.Slug)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Slug == "" {
		cfg.Slug = DefaultSlug
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the base URL is an absolute http(s) URL and a slug is set.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url %q has no host", c.BaseURL)
	}
	if c.Slug == "" {
		return errors.New("slug is required")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envSlug); v != "" {
		cfg.Slug = v
	}
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}
