package etuovi

import (
	"context"
	"errors"
	"fmt"

	"github.com/asuntosalkku/etuovi-import/internal/logger"
	"github.com/asuntosalkku/etuovi-import/pkg/extractor"
	"github.com/asuntosalkku/etuovi-import/pkg/fetcher"
	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

// ErrStructureChanged is returned when the page was fetched but no qualifying
// property data could be recovered from it. Distinct from every network
// failure: it means the extraction patterns need maintenance, not that the
// site is down.
var ErrStructureChanged = errors.New("listing page structure changed")

// Fetch error kinds, re-exported from pkg/fetcher for callers that only
// import this package.
var (
	ErrNotFound    = fetcher.ErrNotFound
	ErrBlocked     = fetcher.ErrBlocked
	ErrTimeout     = fetcher.ErrTimeout
	ErrUnavailable = fetcher.ErrUnavailable
)

// Client imports property data from Etuovi listing pages. Every call is
// independent and stateless; the client holds only configuration and the
// fetcher, so concurrent imports do not interact.
type Client struct {
	fetcher   fetcher.Fetcher
	extractor extractor.Extractor
	config    Config
}

// New creates a client.
func New(opts ...Option) *Client {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := cfg.Fetcher
	if f == nil {
		f = fetcher.NewStatic(fetcher.Config{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
	}

	ext := cfg.Extractor
	if ext == nil {
		ext = extractor.Default()
	}

	return &Client{
		fetcher:   f,
		extractor: ext,
		config:    cfg,
	}
}

// FetchPropertyData runs the full pipeline for one listing URL: validate,
// fetch, extract, map. Any stage failing propagates immediately as one of the
// typed errors; there are no partial results and no retries at this level.
func (c *Client) FetchPropertyData(ctx context.Context, rawURL string) (*listing.PropertyData, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	content, err := c.fetcher.Fetch(ctx, rawURL, fetcher.Options{
		UserAgent: c.config.UserAgent,
		Timeout:   c.config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	fields, err := c.extractor.Extract(content.HTML)
	if err != nil {
		logger.Warn("extraction found no listing data", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStructureChanged, err)
	}

	data, err := listing.Map(fields, rawURL)
	if err != nil {
		logger.Warn("mapped listing failed validation", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStructureChanged, err)
	}

	logger.Debug("property data imported",
		"url", rawURL,
		"debt_free_price", data.DebtFreePrice,
		"size", data.Size)
	return data, nil
}

// Close releases fetcher resources.
func (c *Client) Close() error {
	if c.fetcher != nil {
		return c.fetcher.Close()
	}
	return nil
}
