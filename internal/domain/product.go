package domain

import "time"

// ProductStatus enumerates catalog visibility states.
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)

// ImageState enumerates the lifecycle of a product's generated image.
type ImageState string

const (
	ImageStatePending ImageState = "pending"
	ImageStateReady   ImageState = "ready"
	ImageStateFailed  ImageState = "failed"
)

// ProductImage holds the generated image reference for a product. URL is set
// only in the ready state; Error carries the provider message in the failed
// state, which is terminal (the pipeline never retries).
type ProductImage struct {
	State ImageState `json:"state"`
	URL   string     `json:"url,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Product is a catalog entry. Products are created at publish time with
// placeholder fields and mutated in place as pipeline stages complete. They
// are never deleted; only Status controls storefront visibility.
type Product struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Price             float64       `json:"price"`
	ImagePrompt       string        `json:"image_prompt,omitempty"`
	Image             ProductImage  `json:"image"`
	Details           []string      `json:"details,omitempty"`
	UsageInstructions []string      `json:"usage_instructions,omitempty"`
	Status            ProductStatus `json:"status"`
	Views             int           `json:"views"`
	PerformanceScore  float64       `json:"performance_score"`
	OnSale            bool          `json:"on_sale"`
	DiscountPercent   float64       `json:"discount_percent,omitempty"`
	SalePrice         float64       `json:"sale_price,omitempty"`
	MarketingSlogan   string        `json:"marketing_slogan,omitempty"`
	AdSpend           float64       `json:"ad_spend"`
	ReferredSales     int           `json:"referred_sales"`
	CreatedAt         time.Time     `json:"created_at"`
}

// EffectivePrice returns the sale price while a sale is active, otherwise the
// list price.
func (p *Product) EffectivePrice() float64 {
	if p.OnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}

// Draft is a candidate product awaiting operator review. It carries only the
// generated name and description; everything else is filled in by the publish
// pipeline.
type Draft struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecommendationType tags why a product was featured.
type RecommendationType string

const (
	RecommendationTopSeller    RecommendationType = "TOP_SELLER"
	RecommendationTrending     RecommendationType = "TRENDING"
	RecommendationSpecialOffer RecommendationType = "SPECIAL_OFFER"
	RecommendationPersonalized RecommendationType = "PERSONALIZED"
)

// RecommendedProduct annotates a product with the reason it was selected for
// the featured feed. The set is fully recomputed on each request and never
// persisted.
type RecommendedProduct struct {
	Product
	Reason string             `json:"reason"`
	Type   RecommendationType `json:"type"`
}
