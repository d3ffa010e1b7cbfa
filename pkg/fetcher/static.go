package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/asuntosalkku/etuovi-import/internal/logger"
)

// Config holds configuration shared by both fetcher implementations.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// StaticFetcher performs a plain GET through Colly. One outbound request per
// call, no retries; transient failures are surfaced immediately so the caller
// can decide whether to try again.
type StaticFetcher struct {
	config Config
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg Config) *StaticFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves page content using Colly.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = f.config.UserAgent
	}

	// New collector per request; the fetcher itself stays stateless.
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	// Visit is synchronous, so the context deadline is folded into the
	// request timeout rather than watched on a goroutine.
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return result, classify(0, err)
	}
	c.SetRequestTimeout(timeout)
	logger.Debug("static fetch starting", "url", targetURL, "timeout", timeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range browserHeaders() {
			r.Headers.Set(k, v)
		}
		for k, v := range opts.Headers {
			r.Headers.Set(k, v)
		}
	})

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.HTML = string(r.Body)
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
			result.StatusCode = statusCode
		}
		fetchErr = classify(statusCode, err)
		logger.Debug("static fetch error", "status", statusCode, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		if fetchErr != nil {
			return result, fetchErr
		}
		return result, classify(result.StatusCode, err)
	}
	c.Wait()

	if fetchErr != nil {
		return result, fetchErr
	}
	return result, nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// classify maps a transport or HTTP failure onto the sentinel error taxonomy.
func classify(statusCode int, err error) error {
	switch statusCode {
	case http.StatusNotFound, http.StatusGone:
		return fmt.Errorf("%w: status %d", ErrNotFound, statusCode)
	case http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrBlocked, statusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	if statusCode != 0 {
		return fmt.Errorf("%w: status %d: %v", ErrUnavailable, statusCode, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
