// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL    = "https://api.twelvedata.com"
	defaultInterval   = "1day"
	defaultOutputSize = 5000
)

// Config holds configuration for the Twelve Data API client.
type Config struct {
	TwelveDataAPIKey string        // API key for authentication
	BaseURL          string        // Base URL for the API (e.g., "https://api.twelvedata.com")
	Timeout          time.Duration // HTTP request timeout
	Interval         string        // Bar interval requested for each symbol (e.g., "1day")
	OutputSize       int           // Number of bars requested per symbol
}

// LoadConfig loads Twelve Data configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		TwelveDataAPIKey: os.Getenv("TWELVE_DATA_API_KEY"),
		BaseURL:          os.Getenv("TWELVE_DATA_BASE_URL"),
		Timeout:          10 * time.Second,
		Interval:         os.Getenv("TWELVE_DATA_INTERVAL"),
	}
	if n, err := strconv.Atoi(os.Getenv("TWELVE_DATA_OUTPUT_SIZE")); err == nil {
		cfg.OutputSize = n
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Interval == "" {
		c.Interval = defaultInterval
	}
	if c.OutputSize <= 0 {
		c.OutputSize = defaultOutputSize
	}
	return c
}
