package recommend

import (
	"testing"

	"storefront/internal/domain"
)

func product(id string, price, score float64) domain.Product {
	return domain.Product{
		ID:               id,
		Name:             "Product " + id,
		Price:            price,
		PerformanceScore: score,
		Status:           domain.ProductStatusPublished,
	}
}

func order(items ...domain.CartItem) domain.Order {
	return domain.Order{ID: "o", Items: items}
}

func item(p domain.Product, qty int) domain.CartItem {
	return domain.CartItem{Product: p, Quantity: qty}
}

func TestTopSellerBeatsPerformance(t *testing.T) {
	a := product("a", 10, 0.5)
	b := product("b", 10, 0.9)
	c := product("c", 10, 0.4)
	orders := []domain.Order{order(item(a, 2))}

	got := Compute([]domain.Product{a, b, c}, orders)
	if len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(got))
	}
	if got[0].ID != "a" || got[0].Type != domain.RecommendationTopSeller {
		t.Errorf("got %s/%s, want a/TOP_SELLER", got[0].ID, got[0].Type)
	}
	if got[0].Reason != topSellerReason {
		t.Errorf("reason = %q", got[0].Reason)
	}
}

func TestTrendingFallbackWithoutSales(t *testing.T) {
	a := product("a", 10, 0.5)
	b := product("b", 10, 0.9)
	c := product("c", 10, 0.4)

	got := Compute([]domain.Product{a, b, c}, nil)
	if len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(got))
	}
	if got[0].ID != "b" || got[0].Type != domain.RecommendationTrending {
		t.Errorf("got %s/%s, want b/TRENDING", got[0].ID, got[0].Type)
	}
	if got[0].Reason != trendingReason {
		t.Errorf("reason = %q", got[0].Reason)
	}
}

func TestTopTwoSellersOnly(t *testing.T) {
	a := product("a", 10, 0.5)
	b := product("b", 20, 0.5)
	c := product("c", 5, 0.5)
	orders := []domain.Order{
		order(item(a, 1), item(b, 3), item(c, 1)),
	}

	got := Compute([]domain.Product{a, b, c}, orders)
	if len(got) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("order = %s, %s; want b, a", got[0].ID, got[1].ID)
	}
}

func TestSalePriceDrivesRealizedRevenue(t *testing.T) {
	a := product("a", 100, 0.5)
	b := product("b", 100, 0.5)
	b.OnSale = true
	b.SalePrice = 10
	orders := []domain.Order{order(item(a, 1), item(b, 5))}

	got := Compute([]domain.Product{a, b}, orders)
	// a: 1 * 100 = 100; b: 5 * 10 = 50.
	if got[0].ID != "a" {
		t.Errorf("top = %s, want a", got[0].ID)
	}
}

func TestTiesPreserveCatalogOrder(t *testing.T) {
	a := product("a", 10, 0.7)
	b := product("b", 10, 0.7)

	got := Compute([]domain.Product{a, b}, nil)
	if got[0].ID != "a" {
		t.Errorf("tie broke catalog order: got %s", got[0].ID)
	}
}

func TestIgnoresUnpublishedAndEmptyCatalog(t *testing.T) {
	if got := Compute(nil, nil); got != nil {
		t.Errorf("empty catalog produced %v", got)
	}

	hidden := product("a", 10, 0.9)
	hidden.Status = domain.ProductStatusDraft
	visible := product("b", 10, 0.1)

	got := Compute([]domain.Product{hidden, visible}, nil)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("got %+v, want only published product b", got)
	}
}
