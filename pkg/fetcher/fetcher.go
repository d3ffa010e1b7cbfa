// Package fetcher retrieves listing pages over HTTP. The target site blocks
// requests that do not look like an ordinary browser, so fetchers send a full
// browser fingerprint, and failures map onto a small set of sentinel errors
// the caller can branch on with errors.Is.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error
}

// Options controls fetching behavior.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content represents a fetched listing page.
type Content struct {
	URL        string
	HTML       string
	StatusCode int
	FetchedAt  time.Time
}

// Error kinds for distinguishing failure reasons.
var (
	// ErrNotFound indicates the listing no longer exists (HTTP 404/410).
	ErrNotFound = errors.New("listing not found")
	// ErrBlocked indicates the site's anti-automation defense refused the
	// request (HTTP 403). Usually transient; retry later.
	ErrBlocked = errors.New("request blocked by site")
	// ErrTimeout indicates the request exceeded the fetch deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrUnavailable covers every other transport or HTTP failure.
	ErrUnavailable = errors.New("site unavailable")
)

const (
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is a current Chrome fingerprint.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	acceptLanguage = "fi-FI,fi;q=0.9,en-US;q=0.8,en;q=0.7"
)

// browserHeaders is the header set a plain fetch must carry to get past the
// site's request filtering.
func browserHeaders() map[string]string {
	return map[string]string{
		"Accept":          acceptHTML,
		"Accept-Language": acceptLanguage,
	}
}
