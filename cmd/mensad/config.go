package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	mensahttp "github.com/fwojciec/mensa/http"
	"github.com/fwojciec/mensa/stw"
	"github.com/joho/godotenv"
)

// Environment variables read by the server.
const (
	EnvAddr    = "MENSA_ADDR"
	EnvBaseURL = "MENSA_BASE_URL"
	EnvTimeout = "MENSA_TIMEOUT"
)

// DefaultAddr is the listen address when MENSA_ADDR is unset.
const DefaultAddr = ":8080"

// Config is the server configuration.
type Config struct {
	Addr    string
	BaseURL string
	Timeout time.Duration
}

// LoadEnvFile loads variables from path into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the configuration through getenv, applying defaults for
// unset variables.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		Addr:    DefaultAddr,
		BaseURL: stw.DefaultBaseURL,
		Timeout: mensahttp.DefaultFetchTimeout,
	}

	if v := getenv(EnvAddr); v != "" {
		config.Addr = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		config.BaseURL = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q: use a positive duration such as 10s", EnvTimeout, v)
		}
		config.Timeout = d
	}

	return config, nil
}
