package etuovi

import (
	"context"
	"errors"
	"testing"

	"github.com/asuntosalkku/etuovi-import/pkg/fetcher"
	"github.com/asuntosalkku/etuovi-import/pkg/listing"
)

const testURL = "https://www.etuovi.com/kohde/12345678"

// fakeFetcher serves canned HTML without touching the network.
type fakeFetcher struct {
	html  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, opts fetcher.Options) (fetcher.Content, error) {
	f.calls++
	if f.err != nil {
		return fetcher.Content{URL: url}, f.err
	}
	return fetcher.Content{URL: url, HTML: f.html, StatusCode: 200}, nil
}

func (f *fakeFetcher) Close() error { return nil }

func newTestClient(f *fakeFetcher) *Client {
	return New(WithFetcher(f))
}

// --- FetchPropertyData Tests ---

func TestFetchPropertyData_RegexFallbackScenario(t *testing.T) {
	// Bare key/value fragments, no embedded state blob.
	f := &fakeFetcher{html: `<html><body>` +
		`"debfFreePrice":200000,"livingArea":75.5,` +
		`"periodicCharges":[{"periodicCharge":"HOUSING_COMPANY_MAINTENANCE_CHARGE","price":250,"chargePeriod":"MONTH"}],` +
		`"streetAddressFreeForm":"Test Street 1","roomStructure":"3h + k"` +
		`</body></html>`}

	data, err := newTestClient(f).FetchPropertyData(context.Background(), testURL)
	if err != nil {
		t.Fatalf("FetchPropertyData() failed: %v", err)
	}

	if data.DebtFreePrice != 200000 {
		t.Errorf("expected debt-free price 200000, got %v", data.DebtFreePrice)
	}
	if data.Size != 75.5 {
		t.Errorf("expected size 75.5, got %v", data.Size)
	}
	if data.MaintenanceFee != 250 {
		t.Errorf("expected maintenance fee 250, got %v", data.MaintenanceFee)
	}
	if data.Address != "Test Street 1 - 3h + k" {
		t.Errorf("expected composed address, got %q", data.Address)
	}
	if data.URL != testURL {
		t.Errorf("expected source URL on record, got %q", data.URL)
	}
}

func TestFetchPropertyData_SellingPriceVariant(t *testing.T) {
	f := &fakeFetcher{html: `"sellingPrice":85000,"livingArea":75.5,` +
		`"periodicCharges":[{"periodicCharge":"HOUSING_COMPANY_MAINTENANCE_CHARGE","price":250,"chargePeriod":"MONTH"}],` +
		`"streetAddressFreeForm":"Test Street 1","roomStructure":"3h + k"`}

	data, err := newTestClient(f).FetchPropertyData(context.Background(), testURL)
	if err != nil {
		t.Fatalf("FetchPropertyData() failed: %v", err)
	}
	if data.DebtFreePrice != 85000 {
		t.Errorf("expected debt-free price 85000 from selling price, got %v", data.DebtFreePrice)
	}
}

func TestFetchPropertyData_StateBlobScenario(t *testing.T) {
	f := &fakeFetcher{html: `<html><head><script>window.__INITIAL_STATE__ = ` +
		`{"view":{"listing":{"debfFreePrice":189000,"livingArea":54.5,` +
		`"roomStructure":"2h + k","streetAddressFreeForm":"Laihiantie 10 A 5",` +
		`"residenceType":"APARTMENT_HOUSE"}}};</script></head><body></body></html>`}

	data, err := newTestClient(f).FetchPropertyData(context.Background(), testURL)
	if err != nil {
		t.Fatalf("FetchPropertyData() failed: %v", err)
	}
	if data.DebtFreePrice != 189000 {
		t.Errorf("expected debt-free price 189000, got %v", data.DebtFreePrice)
	}
	if data.PropertyType != "Kerrostalo" {
		t.Errorf("expected translated property type, got %q", data.PropertyType)
	}
	if data.Address != "Laihiantie 10 A 5 - 2h + k" {
		t.Errorf("expected composed address, got %q", data.Address)
	}
}

func TestFetchPropertyData_InvalidURLBeforeNetwork(t *testing.T) {
	f := &fakeFetcher{html: "irrelevant"}

	_, err := newTestClient(f).FetchPropertyData(context.Background(), "https://oikotie.fi/kohde/123")
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
	if f.calls != 0 {
		t.Errorf("no network call may happen for an invalid URL, got %d", f.calls)
	}
}

func TestFetchPropertyData_StructureChanged(t *testing.T) {
	// Page fetched fine but carries neither a state blob nor price text.
	f := &fakeFetcher{html: `<html><body><h1>Remodeled page</h1></body></html>`}

	_, err := newTestClient(f).FetchPropertyData(context.Background(), testURL)
	if !errors.Is(err, ErrStructureChanged) {
		t.Errorf("expected ErrStructureChanged, got %v", err)
	}
}

func TestFetchPropertyData_StructureChangedOnMissingSize(t *testing.T) {
	// A price without an area fails the mapper's post-condition.
	f := &fakeFetcher{html: `"debfFreePrice":200000`}

	_, err := newTestClient(f).FetchPropertyData(context.Background(), testURL)
	if !errors.Is(err, ErrStructureChanged) {
		t.Errorf("expected ErrStructureChanged, got %v", err)
	}
}

func TestFetchPropertyData_FetchErrorsPropagate(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"blocked", ErrBlocked},
		{"timeout", ErrTimeout},
		{"unavailable", ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{err: tt.err}
			_, err := newTestClient(f).FetchPropertyData(context.Background(), testURL)
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
			// Network failures are not the scraper's fault.
			if errors.Is(err, ErrStructureChanged) {
				t.Error("fetch failure must stay distinct from structure-changed")
			}
		})
	}
}

// --- ToCreateInput Tests ---

func TestToCreateInput_AddressAsName(t *testing.T) {
	data := &listing.PropertyData{
		URL:           testURL,
		DebtFreePrice: 200000,
		Size:          75.5,
		Address:       "Test Street 1 - 3h + k",
		Street:        "Test Street 1",
		City:          "Helsinki",
		PostalCode:    "00940",
	}

	in := ToCreateInput(data)
	if in.Name != "Test Street 1 - 3h + k" {
		t.Errorf("expected address as name, got %q", in.Name)
	}
	if in.Street != "Test Street 1" {
		t.Errorf("expected street without room layout, got %q", in.Street)
	}
	if in.ListingID != "12345678" {
		t.Errorf("expected listing id 12345678, got %q", in.ListingID)
	}
	if in.City != "Helsinki" || in.PostalCode != "00940" {
		t.Errorf("expected location passthrough, got %q %q", in.City, in.PostalCode)
	}
}

func TestToCreateInput_FallbackName(t *testing.T) {
	data := &listing.PropertyData{
		URL:           testURL,
		DebtFreePrice: 200000,
		Size:          75.5,
	}

	in := ToCreateInput(data)
	if in.Name != "Etuovi 12345678" {
		t.Errorf("expected fallback name from listing id, got %q", in.Name)
	}
}
