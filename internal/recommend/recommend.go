// Package recommend derives the featured-products feed from the published
// catalog and the order history. The computation is pure and fully replaces
// the previous result on every call.
package recommend

import (
	"sort"

	"storefront/internal/domain"
)

const (
	topSellerReason = "A consistent top-performer in our store."
	trendingReason  = "Trending now based on customer interest."

	maxTopSellers = 2
)

// Compute selects featured products. Published products are ranked by
// realized revenue (units sold times effective unit price); up to the top two
// with positive revenue are tagged TOP_SELLER. With no sales at all, the
// single highest-scoring product is tagged TRENDING instead. Stable sorts
// keep ties in catalog order so the output is reproducible.
func Compute(products []domain.Product, orders []domain.Order) []domain.RecommendedProduct {
	published := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Status == domain.ProductStatusPublished {
			published = append(published, p)
		}
	}
	if len(published) == 0 {
		return nil
	}

	units := unitsSold(orders)
	type ranked struct {
		product domain.Product
		revenue float64
	}
	revenues := make([]ranked, len(published))
	for i, p := range published {
		revenues[i] = ranked{product: p, revenue: float64(units[p.ID]) * p.EffectivePrice()}
	}
	sort.SliceStable(revenues, func(i, j int) bool {
		return revenues[i].revenue > revenues[j].revenue
	})

	var out []domain.RecommendedProduct
	for _, r := range revenues {
		if r.revenue <= 0 || len(out) == maxTopSellers {
			break
		}
		out = append(out, domain.RecommendedProduct{
			Product: r.product,
			Reason:  topSellerReason,
			Type:    domain.RecommendationTopSeller,
		})
	}
	if len(out) > 0 {
		return out
	}

	sort.SliceStable(published, func(i, j int) bool {
		return published[i].PerformanceScore > published[j].PerformanceScore
	})
	return []domain.RecommendedProduct{{
		Product: published[0],
		Reason:  trendingReason,
		Type:    domain.RecommendationTrending,
	}}
}

func unitsSold(orders []domain.Order) map[string]int {
	units := make(map[string]int)
	for _, order := range orders {
		for _, item := range order.Items {
			units[item.ID] += item.Quantity
		}
	}
	return units
}
