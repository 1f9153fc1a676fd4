package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is the backend address when PUBLIC_API_URL is unset.
const DefaultAPIURL = "http://localhost:8002"

type Config struct {
	APIURL         string        `env:"PUBLIC_API_URL" envDefault:"http://localhost:8002"`
	StorageBackend string        `env:"STORAGE_BACKEND" envDefault:"file"`
	StatePath      string        `env:"STATE_PATH"`
	SQLitePath     string        `env:"SQLITE_PATH"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile        string        `env:"LOG_FILE"`
	TraceFile      string        `env:"TRACE_FILE"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	// .env is optional when the variables come from the shell or CI.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applies the configuration rules and fills path defaults.
func (c *Config) validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	parsed, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("config: invalid PUBLIC_API_URL (%q): %w", c.APIURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("config: invalid PUBLIC_API_URL (%q): expected an absolute http(s) URL", c.APIURL)
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT must not be negative")
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case "file", "":
		c.StorageBackend = "file"
		if c.StatePath == "" {
			dir, err := stateDir()
			if err != nil {
				return err
			}
			c.StatePath = filepath.Join(dir, "state.toml")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			dir, err := stateDir()
			if err != nil {
				return err
			}
			c.SQLitePath = filepath.Join(dir, "state.db")
		}
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL: missing scheme or host")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q (want file, sqlite, postgres or memory)", c.StorageBackend)
	}

	return nil
}

// Level parses LOG_LEVEL.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func stateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(base, "ishakiro"), nil
}
