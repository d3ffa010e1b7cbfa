// Package etuovi provides the public API for importing property data from
// Etuovi listing pages.
package etuovi

import (
	"time"

	"github.com/asuntosalkku/etuovi-import/pkg/extractor"
	"github.com/asuntosalkku/etuovi-import/pkg/fetcher"
)

// Config holds client configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration

	// Fetcher overrides the default static fetcher.
	Fetcher fetcher.Fetcher

	// Extractor overrides the default state->regex fallback chain.
	Extractor extractor.Extractor
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: fetcher.DefaultUserAgent,
		Timeout:   fetcher.DefaultTimeout,
	}
}

// Option configures the client.
type Option func(*Config)

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithFetcher injects a custom fetcher, e.g. the headless-browser one.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithExtractor injects a custom extractor chain.
func WithExtractor(e extractor.Extractor) Option {
	return func(c *Config) {
		c.Extractor = e
	}
}
