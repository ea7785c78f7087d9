package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultItemsPath = "data.csv"
	DefaultUsersPath = "users.csv"
	DefaultHTTPAddr  = ":8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

type Config struct {
	ItemsPath string
	UsersPath string
	HTTPAddr  string
	LogLevel  string
	LogFormat string
}

// Load reads envFile (if it exists) into the environment without overriding
// variables that are already set, then builds a Config from the environment.
// An empty envFile means ".env". The result is not validated: callers apply
// their overrides first and then call Validate.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		slog.Debug("no env file found, using environment only", "path", envFile)
	}

	cfg := &Config{
		ItemsPath: getEnv("INVENTORY_ITEMS_PATH", DefaultItemsPath),
		UsersPath: getEnv("INVENTORY_USERS_PATH", DefaultUsersPath),
		HTTPAddr:  getEnv("INVENTORY_HTTP_ADDR", DefaultHTTPAddr),
		LogLevel:  strings.ToLower(getEnv("INVENTORY_LOG_LEVEL", DefaultLogLevel)),
		LogFormat: strings.ToLower(getEnv("INVENTORY_LOG_FORMAT", DefaultLogFormat)),
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.ItemsPath) == "" {
		errs = append(errs, "items path cannot be empty")
	}
	if strings.TrimSpace(c.UsersPath) == "" {
		errs = append(errs, "users path cannot be empty")
	}
	if c.ItemsPath != "" && c.ItemsPath == c.UsersPath {
		errs = append(errs, "items and users must be stored in different files")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
