package store

import (
	"errors"
	"testing"
	"time"

	"github.com/exiletools/stashvault/pkg/types"
)

func TestSales_Lifecycle(t *testing.T) {
	v := newTestVault(t)

	id, err := v.Sales().AddListing(types.SaleInput{
		League: "Standard", ItemName: "Headhunter", Source: "trade-site",
		PriceDivine: 120,
	})
	if err != nil {
		t.Fatalf("AddListing failed: %v", err)
	}

	sale, ok, err := v.Sales().Get(id)
	if err != nil || !ok {
		t.Fatalf("Get after listing: ok=%v err=%v", ok, err)
	}
	if sale.Status != types.SaleStatusListed {
		t.Errorf("status = %s, want %s", sale.Status, types.SaleStatusListed)
	}
	if sale.Currency != "divine" || sale.ListedPrice != 120 {
		t.Errorf("price = %v %s, want 120 divine", sale.ListedPrice, sale.Currency)
	}
	if sale.Game != types.GamePoE1 {
		t.Errorf("game not defaulted: %s", sale.Game)
	}

	found, err := v.Sales().Complete(id, 115, time.Now().Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !found {
		t.Fatal("Complete reported sale missing")
	}

	sale, _, err = v.Sales().Get(id)
	if err != nil {
		t.Fatalf("Get after completion: %v", err)
	}
	if sale.Status != types.SaleStatusSold {
		t.Errorf("status = %s, want %s", sale.Status, types.SaleStatusSold)
	}
	if sale.SoldPrice != 115 {
		t.Errorf("sold price = %v, want 115", sale.SoldPrice)
	}
	// listed just now, sold two hours later, second granularity
	if sale.TimeToSale < time.Hour || sale.TimeToSale > 3*time.Hour {
		t.Errorf("time to sale = %v, want about 2h", sale.TimeToSale)
	}
}

func TestSales_CompleteClampsNegativeDuration(t *testing.T) {
	v := newTestVault(t)

	id, err := v.Sales().AddListing(types.SaleInput{
		League: "Standard", ItemName: "Mageblood", PriceChaos: 9000,
	})
	if err != nil {
		t.Fatalf("AddListing failed: %v", err)
	}

	// sold-at before listed-at: clock skew between local clock and the
	// trade site's stamp
	found, err := v.Sales().Complete(id, 9000, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !found {
		t.Fatal("Complete reported sale missing")
	}

	sale, _, err := v.Sales().Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sale.TimeToSale != 0 {
		t.Errorf("time to sale = %v, want 0", sale.TimeToSale)
	}
}

func TestSales_CompleteMissing(t *testing.T) {
	v := newTestVault(t)

	found, err := v.Sales().Complete(12345, 1, time.Now())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if found {
		t.Error("Complete reported a nonexistent sale as found")
	}
}

func TestSales_InstantSale(t *testing.T) {
	v := newTestVault(t)

	id, err := v.Sales().RecordInstantSale(types.SaleInput{
		League: "Standard", ItemName: "Divine Orb", PriceChaos: 180,
	})
	if err != nil {
		t.Fatalf("RecordInstantSale failed: %v", err)
	}

	sale, ok, err := v.Sales().Get(id)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if sale.Status != types.SaleStatusSold {
		t.Errorf("status = %s, want %s", sale.Status, types.SaleStatusSold)
	}
	if sale.TimeToSale != 0 {
		t.Errorf("time to sale = %v, want 0", sale.TimeToSale)
	}
	if !sale.ListedAt.Equal(sale.SoldAt) {
		t.Errorf("listed %v != sold %v", sale.ListedAt, sale.SoldAt)
	}
	if sale.SoldPrice != 180 {
		t.Errorf("sold price = %v, want 180", sale.SoldPrice)
	}
}

func TestSales_MissingPriceRejected(t *testing.T) {
	v := newTestVault(t)

	_, err := v.Sales().AddListing(types.SaleInput{
		League: "Standard", ItemName: "Chaos Orb",
	})
	if !errors.Is(err, types.ErrMissingPrice) {
		t.Errorf("expected ErrMissingPrice, got %v", err)
	}

	_, err = v.Sales().RecordInstantSale(types.SaleInput{
		League: "Standard", ItemName: "Chaos Orb",
	})
	if !errors.Is(err, types.ErrMissingPrice) {
		t.Errorf("expected ErrMissingPrice from instant sale, got %v", err)
	}
}

func TestSales_GetMissing(t *testing.T) {
	v := newTestVault(t)

	_, ok, err := v.Sales().Get(999)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get reported a nonexistent sale as found")
	}
}

func TestSales_MarkUnsold(t *testing.T) {
	v := newTestVault(t)

	id, err := v.Sales().AddListing(types.SaleInput{
		League: "Standard", ItemName: "Shavronne's Wrappings", PriceChaos: 40,
	})
	if err != nil {
		t.Fatalf("AddListing failed: %v", err)
	}

	found, err := v.Sales().MarkUnsold(id)
	if err != nil || !found {
		t.Fatalf("MarkUnsold: found=%v err=%v", found, err)
	}

	sale, _, err := v.Sales().Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sale.Status != types.SaleStatusUnsold {
		t.Errorf("status = %s, want %s", sale.Status, types.SaleStatusUnsold)
	}

	found, err = v.Sales().MarkUnsold(54321)
	if err != nil {
		t.Fatalf("MarkUnsold failed: %v", err)
	}
	if found {
		t.Error("MarkUnsold reported a nonexistent sale as found")
	}
}

func TestSales_RecentFilters(t *testing.T) {
	v := newTestVault(t)

	inputs := []types.SaleInput{
		{League: "Standard", ItemName: "Tabula Rasa", Source: "trade-site", PriceChaos: 10},
		{League: "Standard", ItemName: "Tabula Rasa", Source: "discord", PriceChaos: 12},
		{League: "Standard", ItemName: "Goldrim", Source: "trade-site", PriceChaos: 1},
	}
	for _, in := range inputs {
		if _, err := v.Sales().AddListing(in); err != nil {
			t.Fatalf("AddListing failed: %v", err)
		}
	}

	byName, err := v.Sales().Recent(0, "tabula", "")
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("name filter matched %d, want 2", len(byName))
	}

	bySource, err := v.Sales().Recent(0, "", "trade-site")
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(bySource) != 2 {
		t.Errorf("source filter matched %d, want 2", len(bySource))
	}

	both, err := v.Sales().Recent(0, "tabula", "discord")
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(both) != 1 {
		t.Errorf("combined filter matched %d, want 1", len(both))
	}

	limited, err := v.Sales().Recent(2, "", "")
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d", len(limited))
	}
}
