package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = "8080"
	DefaultFetchTimeout = 10 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (compatible; RSS-Proxy/1.0)"
	DefaultMaxBodyBytes = 10 << 20
)

// Config holds the service settings taken from the environment
type Config struct {
	Port         string
	FetchTimeout time.Duration
	UserAgent    string
	MaxBodyBytes int
}

// Read loads envFile into the environment (a missing file is fine) and builds the Config
func Read(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load env file %s: %w", envFile, err)
		}
	}

	config := &Config{
		Port:         DefaultPort,
		FetchTimeout: DefaultFetchTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}

	if port := os.Getenv("HTTP_SERVER_PORT"); port != "" {
		config.Port = port
	}

	if timeout := os.Getenv("FETCH_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)

		if err != nil {
			return nil, fmt.Errorf("FETCH_TIMEOUT must be a valid duration: %w", err)
		}

		if d <= 0 {
			return nil, fmt.Errorf("FETCH_TIMEOUT must be positive")
		}

		config.FetchTimeout = d
	}

	if ua := os.Getenv("FETCH_USER_AGENT"); ua != "" {
		config.UserAgent = ua
	}

	if size := os.Getenv("FETCH_MAX_BODY_BYTES"); size != "" {
		n, err := strconv.Atoi(size)

		if err != nil {
			return nil, fmt.Errorf("FETCH_MAX_BODY_BYTES must be a valid integer")
		}

		if n <= 0 {
			return nil, fmt.Errorf("FETCH_MAX_BODY_BYTES must be positive")
		}

		config.MaxBodyBytes = n
	}

	return config, nil
}
