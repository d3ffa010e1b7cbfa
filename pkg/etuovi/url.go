package etuovi

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidURL is returned for any input that is not an Etuovi listing URL.
// It is raised before any network I/O is attempted.
var ErrInvalidURL = errors.New("not an Etuovi listing URL")

// A listing URL: http or https scheme, optional www, the fixed host and the
// kohde path segment. Everything else fails identically.
var listingURLRe = regexp.MustCompile(`^https?://(www\.)?etuovi\.com/kohde/`)

// Trailing numeric path segment, used to derive the listing identifier.
var listingIDRe = regexp.MustCompile(`/(\d+)/?$`)

// ValidateURL checks that the input is a well-formed Etuovi listing URL.
func ValidateURL(rawURL string) error {
	if !listingURLRe.MatchString(rawURL) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}

// ListingID extracts the numeric listing identifier from a listing URL's
// trailing path segment. It returns an empty string when the URL carries no
// numeric segment.
func ListingID(rawURL string) string {
	m := listingIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}
