package services_test

import (
	"testing"

	"muraqqa/internal/domain"
	"muraqqa/internal/repos"
	"muraqqa/internal/services"
)

func originalLine(price int64) domain.LineItem {
	return domain.LineItem{ID: "l1", ArtworkID: "art-001", Title: "Surah An-Noor",
		Kind: domain.KindOriginal, Qty: 1, UnitPrice: price}
}

func newPricing(t *testing.T) *services.PricingService {
	t.Helper()
	return services.NewPricingService(repos.NewMemStore().SeedDemo(), 500)
}

func TestPriceDomesticNoDuty(t *testing.T) {
	svc := newPricing(t)

	pr, err := svc.Price([]domain.LineItem{originalLine(450000)}, "Pakistan", 500, "")
	if err != nil {
		t.Fatal(err)
	}
	if pr.Subtotal != 450000 || pr.Tax != 0 || pr.ShippingCost != 500 {
		t.Fatalf("bad pricing: %+v", pr)
	}
	if pr.Total != 450500 {
		t.Fatalf("want total 450500, got %d", pr.Total)
	}
	if pr.Currency != domain.PKR {
		t.Fatalf("totals must stay in base currency, got %s", pr.Currency)
	}
}

func TestPriceDomesticCountryCaseInsensitive(t *testing.T) {
	svc := newPricing(t)

	for _, country := range []string{"pakistan", "PAKISTAN", " Pakistan "} {
		pr, err := svc.Price([]domain.LineItem{originalLine(450000)}, country, 500, "")
		if err != nil {
			t.Fatal(err)
		}
		if pr.Tax != 0 {
			t.Fatalf("%q: home market must not pay duty, got %d", country, pr.Tax)
		}
	}
}

func TestPriceInternationalDutyOnSubtotalOnly(t *testing.T) {
	svc := newPricing(t)

	pr, err := svc.Price([]domain.LineItem{originalLine(450000)}, "United Kingdom", 8500, "")
	if err != nil {
		t.Fatal(err)
	}
	// 5% of 450000; shipping never enters the duty base
	if pr.Tax != 22500 {
		t.Fatalf("want duty 22500, got %d", pr.Tax)
	}
	if pr.Total != 481000 {
		t.Fatalf("want total 481000, got %d", pr.Total)
	}
}

func TestPricePercentageDiscount(t *testing.T) {
	svc := newPricing(t)

	pr, err := svc.Price([]domain.LineItem{originalLine(450000)}, "Pakistan", 500, "MURAQQA10")
	if err != nil {
		t.Fatal(err)
	}
	if pr.Discount != 45000 {
		t.Fatalf("want discount 45000, got %d", pr.Discount)
	}
	if pr.Total != 405500 {
		t.Fatalf("want total 405500, got %d", pr.Total)
	}
}

func TestPriceFixedDiscount(t *testing.T) {
	svc := newPricing(t)

	pr, err := svc.Price([]domain.LineItem{originalLine(450000)}, "Pakistan", 500, "EIDMUBARAK")
	if err != nil {
		t.Fatal(err)
	}
	if pr.Discount != 50000 || pr.Total != 400500 {
		t.Fatalf("bad fixed discount pricing: %+v", pr)
	}
}

func TestPriceUnknownCodeIsNoop(t *testing.T) {
	svc := newPricing(t)

	pr, err := svc.Price([]domain.LineItem{originalLine(450000)}, "Pakistan", 500, "BADCODE")
	if err != nil {
		t.Fatal(err)
	}
	if pr.Discount != 0 || pr.Total != 450500 {
		t.Fatalf("unknown code should not discount: %+v", pr)
	}
}

func TestPriceTotalNeverNegative(t *testing.T) {
	mem := repos.NewMemStore()
	mem.PutDiscount(domain.Discount{Code: "BIGSALE", Kind: domain.DiscountFixed, Value: 9000000})
	svc := services.NewPricingService(mem, 500)

	// discount caps at subtotal, so total = shipping only
	pr, err := svc.Price([]domain.LineItem{originalLine(10000)}, "Pakistan", 500, "BIGSALE")
	if err != nil {
		t.Fatal(err)
	}
	if pr.Discount != 10000 {
		t.Fatalf("want discount capped at 10000, got %d", pr.Discount)
	}
	if pr.Total != 500 {
		t.Fatalf("want total 500, got %d", pr.Total)
	}
	if pr.Total < 0 {
		t.Fatal("total must never go negative")
	}
}

func TestPriceIsDeterministic(t *testing.T) {
	svc := newPricing(t)
	lines := []domain.LineItem{
		originalLine(450000),
		{ID: "l2", ArtworkID: "art-002", Kind: domain.KindPrint, PrintSize: domain.PrintA3, Qty: 2, UnitPrice: 1250000},
	}

	first, err := svc.Price(lines, "United Kingdom", 8500, "MURAQQA10")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Price(lines, "United Kingdom", 8500, "MURAQQA10")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("re-pricing the same inputs diverged:\n%+v\n%+v", first, second)
	}
}
