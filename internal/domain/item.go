package domain

// Item Model
type Item struct {
	ID          uint     `gorm:"primaryKey" json:"-"`                  // Primary key
	Locator     string   `gorm:"unique;not null" json:"locator"`       // URL-safe identifier, distinct from the title
	Title       string   `gorm:"not null" json:"title"`                // Display title
	Description string   `gorm:"not null" json:"description"`          // Free-form description
	Reviews     []Review `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Ratings, removed with the item
}

// ScoredItem is an Item as read through the items_score view: the base
// fields plus the derived aggregates. The aggregates are computed by the
// view and never stored on the items table.
type ScoredItem struct {
	Locator     string  `json:"locator"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`        // Mean rating, 0-10
	ReviewCount int64   `json:"review_count"` // Number of ratings
	Rank        int64   `json:"rank"`         // Dense rank by score
	Popularity  int64   `json:"popularity"`   // Dense rank by review count
}
