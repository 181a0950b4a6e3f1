package pricing

import (
	"testing"

	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/domain"
	"github.com/nasserdhaferi2013-dot/DiscordPriceBot/internal/service/catalog"
)

func TestAggregateSortsAscendingByPrice(t *testing.T) {
	record := &domain.GameRecord{ID: "g-1", Title: "Hollow Knight"}
	deals := []domain.Deal{
		{ShopName: "Shop A", Amount: 20, Currency: "USD"},
		{ShopName: "Shop B", Amount: 5, Currency: "USD"},
		{ShopName: "Shop C", Amount: 15, Currency: "USD"},
	}

	result, err := Aggregate(record, deals, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := []float64{}
	for _, d := range result.Deals {
		got = append(got, d.Amount)
	}
	want := []float64{5, 15, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
	if result.CheapestIndex != 0 {
		t.Fatalf("expected cheapest index 0, got %d", result.CheapestIndex)
	}
}

func TestAggregateTruncatesDealList(t *testing.T) {
	record := &domain.GameRecord{ID: "g-1", Title: "Hades"}
	deals := make([]domain.Deal, 8)
	for i := range deals {
		deals[i] = domain.Deal{ShopName: "Shop", Amount: float64(10 + i)}
	}

	result, err := Aggregate(record, deals, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Deals) != 5 {
		t.Fatalf("expected 5 deals after truncation, got %d", len(result.Deals))
	}
	if result.Deals[0].Amount != 10 {
		t.Fatalf("truncation must keep the cheapest deals, got %v", result.Deals[0])
	}
}

func TestAggregateTieKeepsOriginalOrder(t *testing.T) {
	record := &domain.GameRecord{ID: "g-1", Title: "Celeste"}
	deals := []domain.Deal{
		{ShopName: "First", Amount: 9.99},
		{ShopName: "Second", Amount: 9.99},
	}

	result, err := Aggregate(record, deals, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Deals[0].ShopName != "First" {
		t.Fatalf("stable sort must keep input order on ties, got %v", result.Deals)
	}
	if result.CheapestIndex != 0 {
		t.Fatalf("first of the tied deals is the cheapest, got index %d", result.CheapestIndex)
	}
}

func TestAggregateMissingAmountSortsLast(t *testing.T) {
	record := &domain.GameRecord{ID: "g-1", Title: "Stray"}
	deals := []domain.Deal{
		{ShopName: "No Price", Amount: -1},
		{ShopName: "Priced", Amount: 12.5},
	}

	result, err := Aggregate(record, deals, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Deals[0].ShopName != "Priced" {
		t.Fatalf("deal without a price must not rank first, got %v", result.Deals)
	}
	if result.Deals[1].HasAmount() {
		t.Fatal("expected the unpriced deal to report no amount")
	}
}

func TestAggregateEmptyDeals(t *testing.T) {
	record := &domain.GameRecord{ID: "g-1", Title: "Inside"}

	result, err := Aggregate(record, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Deals) != 0 {
		t.Fatalf("expected no deals, got %d", len(result.Deals))
	}
}

func TestAggregateCatalogMembership(t *testing.T) {
	snapshot := catalog.SnapshotFromTitles([]string{"Halo Infinite", "Sea of Thieves"})

	inCatalog := &domain.GameRecord{ID: "g-1", Title: "HALO  Infinite"}
	result, err := Aggregate(inCatalog, nil, snapshot)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.InCatalog {
		t.Fatal("expected membership for a catalog title regardless of casing")
	}

	outside := &domain.GameRecord{ID: "g-2", Title: "Elden Ring"}
	result, err = Aggregate(outside, nil, snapshot)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.InCatalog {
		t.Fatal("expected no membership for a title missing from the catalog")
	}
}

func TestAggregateRequiresRecord(t *testing.T) {
	if _, err := Aggregate(nil, nil, nil); err == nil {
		t.Fatal("expected an error for a nil record")
	}
}
