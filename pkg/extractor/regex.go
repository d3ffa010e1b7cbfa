package extractor

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/asuntosalkku/etuovi-import/internal/logger"
	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

// Field patterns for the raw-text fallback. Each one targets a bare JSON-like
// key/value fragment wherever it appears in the document; they are applied
// independently so one missing field never blocks the rest.
//
// debfFreePrice is the site's own spelling. Do not correct it.
var (
	debtFreePriceRe = amountPattern("debfFreePrice")
	sellingPriceRe  = amountPattern("sellingPrice")
	livingAreaRe    = amountPattern("livingArea")
	debtShareRe     = amountPattern("debtShareAmount")

	periodicChargesRe = regexp.MustCompile(`"periodicCharges"\s*:\s*(\[[\s\S]*?\])`)
	maintenanceOnlyRe = regexp.MustCompile(
		`"periodicCharge"\s*:\s*"` + listing.ChargeMaintenance + `"[^}]*?"price"\s*:\s*"?([0-9]+(?:[.,][0-9]+)?)"?`)

	additionalChargesRe = stringPattern("additionalChargesInfo")
	buildYearRe         = regexp.MustCompile(`"buildYear"\s*:\s*"?(\d{4})"?`)
	residenceTypeRe     = stringPattern("residenceType")
	conditionRe         = stringPattern("condition")
	energyClassRe       = stringPattern("energyClass")
	streetFreeFormRe    = stringPattern("streetAddressFreeForm")
	streetAddressRe     = stringPattern("streetAddress")
	roomStructureRe     = stringPattern("roomStructure")
	postCodeRe          = stringPattern("postCode")

	// Municipality default name sits one level under the location key.
	municipalityRe = regexp.MustCompile(
		`"municipality"\s*:\s*\{[^{}]*?"defaultName"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

func amountPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`"` + key + `"\s*:\s*"?([0-9]+(?:[.,][0-9]+)?)"?`)
}

func stringPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`"` + key + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
}

// RegexExtractor scrapes listing fields straight out of the raw text. It is
// the last line of defense for pages where the state blob is missing,
// truncated, or no longer parses.
type RegexExtractor struct{}

// NewRegex creates a raw-text fallback extractor.
func NewRegex() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract applies every field pattern independently and qualifies the result:
// a document yielding no price field at all is considered to carry no listing.
func (e *RegexExtractor) Extract(html string) (*listing.Fields, error) {
	f := &listing.Fields{}

	if v, ok := captureAmount(debtFreePriceRe, html); ok {
		f.DebtFreePrice = v
		f.DebtFreePriceFound = true
	}
	if v, ok := captureAmount(sellingPriceRe, html); ok {
		f.SellingPrice = v
		f.SellingPriceFound = true
	}
	if v, ok := captureAmount(livingAreaRe, html); ok {
		f.LivingArea = v
	}
	if v, ok := captureAmount(debtShareRe, html); ok {
		f.DebtShareAmount = v
	}

	f.PeriodicCharges = captureCharges(html)
	f.AdditionalChargesInfo = captureString(additionalChargesRe, html)
	f.ResidenceType = captureString(residenceTypeRe, html)
	f.Condition = captureString(conditionRe, html)
	f.EnergyClass = captureString(energyClassRe, html)
	f.StreetAddressFreeForm = captureString(streetFreeFormRe, html)
	f.StreetAddress = captureString(streetAddressRe, html)
	f.RoomStructure = captureString(roomStructureRe, html)
	f.PostCode = captureString(postCodeRe, html)

	if city := captureString(municipalityRe, html); city != "" {
		f.Location = &listing.Location{Municipality: &listing.Municipality{DefaultName: city}}
	}

	if v, ok := captureInt(buildYearRe, html); ok {
		f.BuildYear = v
	}

	if !f.HasPrice() {
		return nil, fmt.Errorf("%w: no price field matched", ErrNoListingData)
	}
	return f, nil
}

// Name returns the extractor identifier.
func (e *RegexExtractor) Name() string {
	return "regex"
}

// captureCharges first tries strict JSON parsing of the captured array
// fragment, then falls back to a targeted pattern for the maintenance charge
// entry alone.
func captureCharges(html string) []listing.PeriodicCharge {
	if m := periodicChargesRe.FindStringSubmatch(html); m != nil {
		var charges []listing.PeriodicCharge
		if err := json.Unmarshal([]byte(m[1]), &charges); err == nil {
			return charges
		}
		logger.Debug("periodic charges fragment is not strict JSON, trying targeted pattern")
	}
	if v, ok := captureAmount(maintenanceOnlyRe, html); ok {
		return []listing.PeriodicCharge{{PeriodicCharge: listing.ChargeMaintenance, Price: v}}
	}
	return nil
}

// captureAmount parses a matched amount. Comma decimal separators become
// dots, the value is rounded to two decimals, and non-finite values count as
// absent. An explicit zero literal is a valid match.
func captureAmount(re *regexp.Regexp, html string) (float64, bool) {
	m := re.FindStringSubmatch(html)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return listing.Round2(v), true
}

func captureInt(re *regexp.Regexp, html string) (int, bool) {
	m := re.FindStringSubmatch(html)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// captureString returns a matched text field with JSON escape sequences
// (notably \uXXXX) decoded to their literal characters.
func captureString(re *regexp.Regexp, html string) string {
	m := re.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return decodeEscapes(m[1])
}

// decodeEscapes interprets JSON string escapes in a raw capture, notably the
// \uXXXX sequences the site emits in text fields. A capture that does not
// form a valid JSON string is returned unchanged.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var decoded string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &decoded); err == nil {
		return decoded
	}
	return s
}
