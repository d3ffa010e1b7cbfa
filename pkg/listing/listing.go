// Package listing defines the data shapes flowing through an Etuovi import:
// the raw field set recovered from a listing page and the normalized property
// record handed to the caller.
package listing

import "math"

// Periodic charge kinds as they appear in Etuovi listing data.
const (
	ChargeMaintenance = "HOUSING_COMPANY_MAINTENANCE_CHARGE"
	ChargeFinancing   = "HOUSING_COMPANY_FINANCING_CHARGE"
)

// PeriodicCharge is one entry of a listing's recurring-cost table.
type PeriodicCharge struct {
	PeriodicCharge string  `json:"periodicCharge"`
	Price          float64 `json:"price"`
	ChargePeriod   string  `json:"chargePeriod"`
}

// Municipality is the nested municipality object under a listing's location.
type Municipality struct {
	DefaultName string `json:"defaultName"`
}

// Location holds the location sub-object of a listing.
type Location struct {
	Municipality *Municipality `json:"municipality"`
	PostCode     string        `json:"postCode"`
}

// Fields mirrors the source site's own field names and units, exactly as they
// appear in the page data. All fields are optional; whichever extraction path
// produced them fills in what it found.
//
// The debfFreePrice spelling is the site's, not ours. Correcting it would
// silently stop matching real documents.
type Fields struct {
	DebtFreePrice         float64          `json:"debfFreePrice"`
	DebtFreePriceFound    bool             `json:"-"`
	SellingPrice          float64          `json:"sellingPrice"`
	SellingPriceFound     bool             `json:"-"`
	LivingArea            float64          `json:"livingArea"`
	DebtShareAmount       float64          `json:"debtShareAmount"`
	PeriodicCharges       []PeriodicCharge `json:"periodicCharges"`
	AdditionalChargesInfo string           `json:"additionalChargesInfo"`
	BuildYear             int              `json:"buildYear"`
	ResidenceType         string           `json:"residenceType"`
	Condition             string           `json:"condition"`
	EnergyClass           string           `json:"energyClass"`
	StreetAddressFreeForm string           `json:"streetAddressFreeForm"`
	StreetAddress         string           `json:"streetAddress"`
	RoomStructure         string           `json:"roomStructure"`
	Location              *Location        `json:"location"`
	PostCode              string           `json:"postCode"`
}

// HasPrice reports whether either price field was recovered. Extraction that
// yields no price at all is treated as a failure upstream.
func (f *Fields) HasPrice() bool {
	return f.DebtFreePriceFound || f.SellingPriceFound ||
		f.DebtFreePrice != 0 || f.SellingPrice != 0
}

// City returns the municipality default name, whether it arrived nested under
// location or flattened by the regex path.
func (f *Fields) City() string {
	if f.Location != nil && f.Location.Municipality != nil {
		return f.Location.Municipality.DefaultName
	}
	return ""
}

// PostalCode prefers the top-level postCode, falling back to the one nested
// under location.
func (f *Fields) PostalCode() string {
	if f.PostCode != "" {
		return f.PostCode
	}
	if f.Location != nil {
		return f.Location.PostCode
	}
	return ""
}

// PropertyData is the normalized record returned to the caller. DebtFreePrice
// and Size are load-bearing; everything else degrades to absent. Street is
// the bare street component; Address additionally carries the room layout.
type PropertyData struct {
	URL             string   `json:"url" yaml:"url" validate:"required"`
	DebtFreePrice   float64  `json:"debtFreePrice" yaml:"debtFreePrice" validate:"required,gt=0"`
	DebtShare       *float64 `json:"debtShare,omitempty" yaml:"debtShare,omitempty"`
	Size            float64  `json:"size" yaml:"size" validate:"required,gt=0"`
	MaintenanceFee  float64  `json:"maintenanceFee" yaml:"maintenanceFee"`
	WaterCharge     *float64 `json:"waterCharge,omitempty" yaml:"waterCharge,omitempty"`
	FinancingCharge *float64 `json:"financingCharge,omitempty" yaml:"financingCharge,omitempty"`
	Address         string   `json:"address,omitempty" yaml:"address,omitempty"`
	Street          string   `json:"street,omitempty" yaml:"street,omitempty"`
	City            string   `json:"city,omitempty" yaml:"city,omitempty"`
	PostalCode      string   `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	BuildYear       int      `json:"buildYear,omitempty" yaml:"buildYear,omitempty"`
	PropertyType    string   `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	Condition       string   `json:"condition,omitempty" yaml:"condition,omitempty"`
	EnergyClass     string   `json:"energyClass,omitempty" yaml:"energyClass,omitempty"`
}

// residenceTypeLabels translates Etuovi residence type codes to display
// labels. Unknown codes pass through verbatim.
var residenceTypeLabels = map[string]string{
	"APARTMENT_HOUSE":      "Kerrostalo",
	"ROW_HOUSE":            "Rivitalo",
	"SEMI_DETACHED_HOUSE":  "Paritalo",
	"DETACHED_HOUSE":       "Omakotitalo",
	"SEPARATE_HOUSE":       "Erillistalo",
	"BALCONY_ACCESS_BLOCK": "Luhtitalo",
	"WOODEN_HOUSE_SHARE":   "Puutalo-osake",
}

// TranslateResidenceType maps a residence type code to its display label.
func TranslateResidenceType(code string) string {
	if label, ok := residenceTypeLabels[code]; ok {
		return label
	}
	return code
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
