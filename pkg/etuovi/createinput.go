package etuovi

import (
	"fmt"

	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

// CreateInput is the shape the host bookkeeping application expects when
// creating a property from imported data. This restructuring is host-specific
// glue and may vary per integration.
type CreateInput struct {
	Name            string   `json:"name" yaml:"name"`
	ListingID       string   `json:"listingId,omitempty" yaml:"listingId,omitempty"`
	Street          string   `json:"street,omitempty" yaml:"street,omitempty"`
	City            string   `json:"city,omitempty" yaml:"city,omitempty"`
	PostalCode      string   `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	DebtFreePrice   float64  `json:"debtFreePrice" yaml:"debtFreePrice"`
	DebtShare       *float64 `json:"debtShare,omitempty" yaml:"debtShare,omitempty"`
	Size            float64  `json:"size" yaml:"size"`
	MaintenanceFee  float64  `json:"maintenanceFee" yaml:"maintenanceFee"`
	WaterCharge     *float64 `json:"waterCharge,omitempty" yaml:"waterCharge,omitempty"`
	FinancingCharge *float64 `json:"financingCharge,omitempty" yaml:"financingCharge,omitempty"`
	BuildYear       int      `json:"buildYear,omitempty" yaml:"buildYear,omitempty"`
	PropertyType    string   `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	Condition       string   `json:"condition,omitempty" yaml:"condition,omitempty"`
	EnergyClass     string   `json:"energyClass,omitempty" yaml:"energyClass,omitempty"`
}

// ToCreateInput maps a normalized property record into the host's
// property-creation shape. When no address was recovered, the display name
// falls back to the listing identifier.
func ToCreateInput(data *listing.PropertyData) CreateInput {
	id := ListingID(data.URL)

	name := data.Address
	if name == "" && id != "" {
		name = fmt.Sprintf("Etuovi %s", id)
	}
	if name == "" {
		name = data.URL
	}

	return CreateInput{
		Name:            name,
		ListingID:       id,
		Street:          data.Street,
		City:            data.City,
		PostalCode:      data.PostalCode,
		DebtFreePrice:   data.DebtFreePrice,
		DebtShare:       data.DebtShare,
		Size:            data.Size,
		MaintenanceFee:  data.MaintenanceFee,
		WaterCharge:     data.WaterCharge,
		FinancingCharge: data.FinancingCharge,
		BuildYear:       data.BuildYear,
		PropertyType:    data.PropertyType,
		Condition:       data.Condition,
		EnergyClass:     data.EnergyClass,
	}
}
