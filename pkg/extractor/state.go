package extractor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/asuntosalkku/etuovi-import/internal/logger"
	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

// stateVar is the global the site assigns its page state to inside a script
// block. The assignment is a large JSON literal; the non-greedy capture stops
// at the first plausible closing point: a sibling window assignment, the end
// of the script tag, or the end of the document.
const stateVar = "__INITIAL_STATE__"

var stateAssignRe = regexp.MustCompile(
	`window\.` + stateVar + `\s*=\s*(\{[\s\S]*?\})\s*(?:;\s*window\.|;?\s*</script|;?\s*$)`)

// maxSearchDepth bounds the fingerprint descent so pathological or cyclic
// object graphs cannot recurse without limit.
const maxSearchDepth = 10

// StateExtractor locates the embedded JSON state blob, parses it, and walks
// the resulting object graph for the first sub-object that looks like listing
// data: one holding both a price-like and a floor-area-like key.
type StateExtractor struct{}

// NewState creates a state-blob extractor.
func NewState() *StateExtractor {
	return &StateExtractor{}
}

// Extract parses the embedded state and returns the fingerprinted sub-object's
// fields verbatim.
func (e *StateExtractor) Extract(html string) (*listing.Fields, error) {
	raw, ok := e.findStateLiteral(html)
	if !ok {
		return nil, fmt.Errorf("%w: no %s assignment", ErrNoListingData, stateVar)
	}

	var state any
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("%w: state blob is not valid JSON: %v", ErrNoListingData, err)
	}

	obj := findListingObject(state, 0)
	if obj == nil {
		return nil, fmt.Errorf("%w: no sub-object matched the listing fingerprint", ErrNoListingData)
	}
	logger.Debug("listing object found in state blob", "keys", len(obj))

	return fieldsFromObject(obj), nil
}

// Name returns the extractor identifier.
func (e *StateExtractor) Name() string {
	return "state"
}

// findStateLiteral returns the textual boundaries of the state JSON literal.
// Script contents are scanned individually first so an assignment mentioned in
// page text cannot shadow the real one; a whole-document scan covers pages
// goquery cannot parse.
func (e *StateExtractor) findStateLiteral(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		var raw string
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if !strings.Contains(text, stateVar) {
				return true
			}
			if m := stateAssignRe.FindStringSubmatch(text); m != nil {
				raw = m[1]
				return false
			}
			return true
		})
		if raw != "" {
			return raw, true
		}
	}

	if m := stateAssignRe.FindStringSubmatch(html); m != nil {
		return m[1], true
	}
	return "", false
}

// findListingObject walks the parsed state depth-first for the first map that
// carries the listing fingerprint. Depth is tracked explicitly; call-stack
// limits are not a termination guarantee.
func findListingObject(v any, depth int) map[string]any {
	if depth > maxSearchDepth {
		return nil
	}

	switch t := v.(type) {
	case map[string]any:
		if matchesFingerprint(t) {
			return t
		}
		for _, child := range t {
			if m := findListingObject(child, depth+1); m != nil {
				return m
			}
		}
	case []any:
		for _, child := range t {
			if m := findListingObject(child, depth+1); m != nil {
				return m
			}
		}
	}
	return nil
}

// matchesFingerprint reports whether a map looks like the listing data object:
// it must carry a price field and the floor-area field at the same level.
func matchesFingerprint(m map[string]any) bool {
	_, hasArea := m["livingArea"]
	if !hasArea {
		return false
	}
	if _, ok := m["debfFreePrice"]; ok {
		return true
	}
	_, ok := m["sellingPrice"]
	return ok
}
