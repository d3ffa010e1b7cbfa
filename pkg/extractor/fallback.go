package extractor

import (
	"fmt"
	"strings"

	"github.com/asuntosalkku/etuovi-import/internal/logger"
	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

// FallbackExtractor tries each extractor in order until one succeeds.
type FallbackExtractor struct {
	extractors []Extractor
}

// NewFallback creates a fallback chain from the given extractors.
// Extractors are tried in order.
func NewFallback(extractors ...Extractor) *FallbackExtractor {
	return &FallbackExtractor{extractors: extractors}
}

// Default returns the standard chain: embedded state blob first, raw-text
// regex scan second.
func Default() *FallbackExtractor {
	return NewFallback(NewState(), NewRegex())
}

// Extract tries each extractor in order until one succeeds.
func (f *FallbackExtractor) Extract(html string) (*listing.Fields, error) {
	var lastErr error
	var tried []string

	for _, ext := range f.extractors {
		tried = append(tried, ext.Name())
		fields, err := ext.Extract(html)
		if err == nil {
			logger.Debug("extraction succeeded", "extractor", ext.Name())
			return fields, nil
		}
		logger.Debug("extractor failed, trying next", "extractor", ext.Name(), "error", err)
		lastErr = err
	}

	if lastErr == nil {
		lastErr = ErrNoListingData
	}
	return nil, fmt.Errorf("all extractors failed (tried: %s): %w", strings.Join(tried, ", "), lastErr)
}

// Name returns the fallback chain name.
func (f *FallbackExtractor) Name() string {
	var names []string
	for _, ext := range f.extractors {
		names = append(names, ext.Name())
	}
	return "fallback(" + strings.Join(names, "->") + ")"
}
