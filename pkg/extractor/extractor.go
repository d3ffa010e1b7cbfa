// Package extractor recovers structured listing fields from raw listing-page
// HTML. The page format is undocumented and changes without notice, so
// extraction is layered: an embedded JSON state blob is tried first, then
// field-by-field regular expressions against the raw text. The layers are
// composed as an explicit fallback chain rather than exception fallthrough.
package extractor

import (
	"errors"

	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

// ErrNoListingData is returned when an extractor finds nothing usable in the
// document. Once every layer has failed, the only realistic cause is that the
// upstream page layout changed.
var ErrNoListingData = errors.New("no listing data found in document")

// Extractor recovers listing fields from page HTML.
type Extractor interface {
	// Extract parses the document and returns whatever fields it could
	// recover. It fails with ErrNoListingData when nothing qualifying is
	// found.
	Extract(html string) (*listing.Fields, error)

	// Name returns the extractor identifier.
	Name() string
}
