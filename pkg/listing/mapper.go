package listing

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingRequired is returned when mapping cannot produce the load-bearing
// numeric fields. The usual cause is an upstream page-layout change.
var ErrMissingRequired = errors.New("required listing fields missing")

var validate = validator.New()

// Finnish water fee inside the free-text additional charges blob, e.g.
// "Vesimaksu: 22,50 €/hlö/kk".
var waterFeeRe = regexp.MustCompile(`(?i)vesimaksu[^0-9€]*([0-9]+(?:[.,][0-9]+)?)\s*€`)

// Map converts raw extracted fields into the normalized property record.
// It fails when the debt-free price or apartment size still resolves to zero,
// which is the caller-visible signal that the site layout has likely changed.
func Map(f *Fields, url string) (*PropertyData, error) {
	data := &PropertyData{
		URL:            url,
		DebtFreePrice:  pickPrice(f),
		Size:           f.LivingArea,
		MaintenanceFee: chargePrice(f.PeriodicCharges, ChargeMaintenance),
		Address:        composeAddress(f),
		Street:         pickStreet(f),
		City:           f.City(),
		PostalCode:     f.PostalCode(),
		BuildYear:      f.BuildYear,
		Condition:      f.Condition,
		EnergyClass:    f.EnergyClass,
	}

	if f.DebtShareAmount != 0 {
		data.DebtShare = amount(f.DebtShareAmount)
	}
	if p := chargePrice(f.PeriodicCharges, ChargeFinancing); p != 0 {
		data.FinancingCharge = amount(p)
	}
	if w, ok := mineWaterFee(f.AdditionalChargesInfo); ok {
		data.WaterCharge = amount(w)
	}
	if f.ResidenceType != "" {
		data.PropertyType = TranslateResidenceType(f.ResidenceType)
	}

	if err := validate.Struct(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingRequired, err)
	}
	return data, nil
}

// pickPrice prefers the primary debt-free price over the secondary selling
// price. Zero means neither was usable and mapping will fail validation.
func pickPrice(f *Fields) float64 {
	if f.DebtFreePrice != 0 {
		return f.DebtFreePrice
	}
	return f.SellingPrice
}

// chargePrice returns the price of the first periodic charge of the given
// kind, or 0 when no entry matches.
func chargePrice(charges []PeriodicCharge, kind string) float64 {
	for _, c := range charges {
		if c.PeriodicCharge == kind {
			return c.Price
		}
	}
	return 0
}

// pickStreet returns the street address alone. Free-form street text wins
// over the structured field.
func pickStreet(f *Fields) string {
	if f.StreetAddressFreeForm != "" {
		return f.StreetAddressFreeForm
	}
	return f.StreetAddress
}

// composeAddress joins the street address and the room layout with a fixed
// separator.
func composeAddress(f *Fields) string {
	street := pickStreet(f)

	parts := make([]string, 0, 2)
	if street != "" {
		parts = append(parts, street)
	}
	if f.RoomStructure != "" {
		parts = append(parts, f.RoomStructure)
	}
	return strings.Join(parts, " - ")
}

// mineWaterFee digs a water fee amount out of the free-text charges blob.
func mineWaterFee(info string) (float64, bool) {
	m := waterFeeRe.FindStringSubmatch(info)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return Round2(v), true
}

func amount(v float64) *float64 {
	v = Round2(v)
	return &v
}
