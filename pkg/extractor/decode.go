package extractor

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

// fieldsFromObject copies the fingerprinted sub-object's fields into the
// typed field set. Decoding is per-field and tolerant: a field of an
// unexpected shape is dropped rather than failing the whole object, since
// only the price and area fields are load-bearing.
func fieldsFromObject(obj map[string]any) *listing.Fields {
	f := &listing.Fields{}

	if v, ok := asFloat(obj["debfFreePrice"]); ok {
		f.DebtFreePrice = v
		f.DebtFreePriceFound = true
	}
	if v, ok := asFloat(obj["sellingPrice"]); ok {
		f.SellingPrice = v
		f.SellingPriceFound = true
	}
	if v, ok := asFloat(obj["livingArea"]); ok {
		f.LivingArea = v
	}
	if v, ok := asFloat(obj["debtShareAmount"]); ok {
		f.DebtShareAmount = v
	}
	if v, ok := asInt(obj["buildYear"]); ok {
		f.BuildYear = v
	}

	f.AdditionalChargesInfo = asString(obj["additionalChargesInfo"])
	f.ResidenceType = asString(obj["residenceType"])
	f.Condition = asString(obj["condition"])
	f.EnergyClass = asString(obj["energyClass"])
	f.StreetAddressFreeForm = asString(obj["streetAddressFreeForm"])
	f.StreetAddress = asString(obj["streetAddress"])
	f.RoomStructure = asString(obj["roomStructure"])
	f.PostCode = asString(obj["postCode"])

	f.PeriodicCharges = decodeCharges(obj["periodicCharges"])
	f.Location = decodeLocation(obj["location"])

	return f
}

// decodeCharges round-trips the untyped charge array through JSON into the
// typed slice. A malformed array yields no charges, not an error.
func decodeCharges(v any) []listing.PeriodicCharge {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	raw, err := json.Marshal(arr)
	if err != nil {
		return nil
	}
	var charges []listing.PeriodicCharge
	if err := json.Unmarshal(raw, &charges); err != nil {
		return nil
	}
	return charges
}

func decodeLocation(v any) *listing.Location {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	loc := &listing.Location{PostCode: asString(m["postCode"])}
	if mun, ok := m["municipality"].(map[string]any); ok {
		loc.Municipality = &listing.Municipality{DefaultName: asString(mun["defaultName"])}
	}
	if loc.Municipality == nil && loc.PostCode == "" {
		return nil
	}
	return loc
}

// asFloat coerces JSON numbers and numeric strings. Comma decimal separators
// are accepted; anything that does not parse to a finite number is absent.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(t, ",", "."), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
