package domain

import "time"

// PostType enumerates marketing feed entry categories.
type PostType string

const (
	PostTypeNewProduct PostType = "New Product"
	PostTypePromotion  PostType = "Promotion"
)

// SocialMediaPost is a marketing feed entry produced by the publish pipeline.
// The feed is kept newest-first.
type SocialMediaPost struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Type      PostType  `json:"type"`
}
