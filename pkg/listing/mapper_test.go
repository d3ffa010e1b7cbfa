package listing

import (
	"errors"
	"testing"
)

const testURL = "https://www.etuovi.com/kohde/12345678"

func baseFields() *Fields {
	return &Fields{
		DebtFreePrice:      189000,
		DebtFreePriceFound: true,
		LivingArea:         54.5,
	}
}

// --- Map Tests ---

func TestMap_PricePreference(t *testing.T) {
	tests := []struct {
		name     string
		debtFree float64
		selling  float64
		want     float64
	}{
		{"primary wins", 189000, 150000, 189000},
		{"secondary fallback", 0, 85000, 85000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fields{DebtFreePrice: tt.debtFree, SellingPrice: tt.selling, LivingArea: 30}
			data, err := Map(f, testURL)
			if err != nil {
				t.Fatalf("Map() failed: %v", err)
			}
			if data.DebtFreePrice != tt.want {
				t.Errorf("expected debt-free price %v, got %v", tt.want, data.DebtFreePrice)
			}
		})
	}
}

func TestMap_NoPriceFails(t *testing.T) {
	_, err := Map(&Fields{LivingArea: 54.5}, testURL)
	if !errors.Is(err, ErrMissingRequired) {
		t.Errorf("expected ErrMissingRequired, got %v", err)
	}
}

func TestMap_NoSizeFails(t *testing.T) {
	_, err := Map(&Fields{DebtFreePrice: 100000}, testURL)
	if !errors.Is(err, ErrMissingRequired) {
		t.Errorf("expected ErrMissingRequired, got %v", err)
	}
}

func TestMap_MaintenanceFeeLookup(t *testing.T) {
	f := baseFields()
	f.PeriodicCharges = []PeriodicCharge{
		{PeriodicCharge: "SOMETHING_ELSE", Price: 99, ChargePeriod: "MONTH"},
		{PeriodicCharge: ChargeMaintenance, Price: 245.30, ChargePeriod: "MONTH"},
	}

	data, err := Map(f, testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.MaintenanceFee != 245.30 {
		t.Errorf("expected maintenance fee 245.30, got %v", data.MaintenanceFee)
	}
}

func TestMap_MaintenanceFeeDefaultsToZero(t *testing.T) {
	data, err := Map(baseFields(), testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	// Zero, not absent: the field is always present in the record.
	if data.MaintenanceFee != 0 {
		t.Errorf("expected maintenance fee 0, got %v", data.MaintenanceFee)
	}
}

func TestMap_FinancingChargeAbsentWhenNoMatch(t *testing.T) {
	data, err := Map(baseFields(), testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.FinancingCharge != nil {
		t.Errorf("expected absent financing charge, got %v", *data.FinancingCharge)
	}
}

func TestMap_FinancingChargePresent(t *testing.T) {
	f := baseFields()
	f.PeriodicCharges = []PeriodicCharge{
		{PeriodicCharge: ChargeFinancing, Price: 120, ChargePeriod: "MONTH"},
	}

	data, err := Map(f, testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.FinancingCharge == nil || *data.FinancingCharge != 120 {
		t.Errorf("expected financing charge 120, got %v", data.FinancingCharge)
	}
}

func TestMap_DebtSharePassthrough(t *testing.T) {
	f := baseFields()
	f.DebtShareAmount = 39000

	data, err := Map(f, testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.DebtShare == nil || *data.DebtShare != 39000 {
		t.Errorf("expected debt share 39000, got %v", data.DebtShare)
	}
}

func TestMap_DebtShareAbsentWhenZero(t *testing.T) {
	data, err := Map(baseFields(), testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.DebtShare != nil {
		t.Errorf("expected absent debt share, got %v", *data.DebtShare)
	}
}

func TestMap_WaterChargeMinedFromFreeText(t *testing.T) {
	f := baseFields()
	f.AdditionalChargesInfo = "Vesimaksu: 22,50 €/hlö/kk. Sauna 15 €/kk."

	data, err := Map(f, testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.WaterCharge == nil || *data.WaterCharge != 22.50 {
		t.Errorf("expected water charge 22.50, got %v", data.WaterCharge)
	}
}

func TestMap_WaterChargeAbsentWhenNotMentioned(t *testing.T) {
	f := baseFields()
	f.AdditionalChargesInfo = "Autopaikka 10 €/kk"

	data, err := Map(f, testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.WaterCharge != nil {
		t.Errorf("expected absent water charge, got %v", *data.WaterCharge)
	}
}

func TestMap_PropertyTypeTranslation(t *testing.T) {
	f := baseFields()
	f.ResidenceType = "ROW_HOUSE"

	data, err := Map(f, testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.PropertyType != "Rivitalo" {
		t.Errorf("expected Rivitalo, got %q", data.PropertyType)
	}
}

func TestMap_UnknownPropertyTypePassesThrough(t *testing.T) {
	f := baseFields()
	f.ResidenceType = "HOUSEBOAT"

	data, err := Map(f, testURL)
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.PropertyType != "HOUSEBOAT" {
		t.Errorf("expected verbatim code, got %q", data.PropertyType)
	}
}

// --- composeAddress Tests ---

func TestComposeAddress(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   string
	}{
		{
			"street and rooms",
			Fields{StreetAddressFreeForm: "Laihiantie 10 A 5", RoomStructure: "2h + k + kph"},
			"Laihiantie 10 A 5 - 2h + k + kph",
		},
		{
			"street only, no separator",
			Fields{StreetAddressFreeForm: "Laihiantie 10 A 5"},
			"Laihiantie 10 A 5",
		},
		{
			"structured fallback",
			Fields{StreetAddress: "Koulukatu 2", RoomStructure: "3h + k"},
			"Koulukatu 2 - 3h + k",
		},
		{
			"free-form wins over structured",
			Fields{StreetAddressFreeForm: "Free Form 1", StreetAddress: "Structured 2"},
			"Free Form 1",
		},
		{"nothing", Fields{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := composeAddress(&tt.fields); got != tt.want {
				t.Errorf("composeAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMap_StreetExcludesRoomLayout(t *testing.T) {
	f := &Fields{
		DebtFreePrice:         189000,
		LivingArea:            54.5,
		StreetAddressFreeForm: "Laihiantie 10 A 5",
		RoomStructure:         "2h + k + kph",
	}

	data, err := Map(f, "https://www.etuovi.com/kohde/12345678")
	if err != nil {
		t.Fatalf("Map() failed: %v", err)
	}
	if data.Street != "Laihiantie 10 A 5" {
		t.Errorf("expected bare street, got %q", data.Street)
	}
	if data.Address != "Laihiantie 10 A 5 - 2h + k + kph" {
		t.Errorf("expected composite address, got %q", data.Address)
	}
}

// --- Fields helper Tests ---

func TestFields_CityAndPostalCode(t *testing.T) {
	f := Fields{
		Location: &Location{
			Municipality: &Municipality{DefaultName: "Vaasa"},
			PostCode:     "65100",
		},
	}
	if f.City() != "Vaasa" {
		t.Errorf("expected Vaasa, got %q", f.City())
	}
	if f.PostalCode() != "65100" {
		t.Errorf("expected 65100 from location, got %q", f.PostalCode())
	}

	f.PostCode = "65200"
	if f.PostalCode() != "65200" {
		t.Errorf("top-level postCode should win, got %q", f.PostalCode())
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(22.456); got != 22.46 {
		t.Errorf("Round2(22.456) = %v, want 22.46", got)
	}
	if got := Round2(100); got != 100 {
		t.Errorf("Round2(100) = %v, want 100", got)
	}
}
