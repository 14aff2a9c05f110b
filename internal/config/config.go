package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit config path is given. It is optional.
const DefaultFile = "mulscan.yaml"

const (
	EnvCookie   = "AOC_COOKIE"
	EnvURL      = "AOC_URL"
	EnvCache    = "MULSCAN_CACHE"
	EnvLogLevel = "MULSCAN_LOG_LEVEL"
)

type Config struct {
	Session  string        `yaml:"session"`
	URL      string        `yaml:"url"`
	Cache    string        `yaml:"cache"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Cache:    ".mulscan/cache.db",
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// LoadEnvFile loads KEY=value pairs from the given .env files (".env" when
// none are given) into the process environment. Missing files are ignored;
// variables already set are not overridden.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}

	return nil
}

// Load builds the configuration from defaults, then the YAML file, then the
// environment. An explicit path must exist; the default file is optional.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = LoadFromBytes(data); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.ApplyEnv()

	return cfg, nil
}

// LoadFromBytes parses a YAML document on top of the defaults.
// Empty data returns ErrConfigEmpty.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.merge(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	if len(data) == 0 {
		return ErrConfigEmpty
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields with the non-empty environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvCookie); v != "" {
		c.Session = v
	}
	if v := os.Getenv(EnvURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvCache); v != "" {
		c.Cache = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the settings needed to fetch the input over HTTP.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session) == "" {
		return ErrMissingCookie
	}
	if strings.TrimSpace(c.URL) == "" {
		return ErrMissingURL
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
