package domain

import "time"

// Review Model
type Review struct {
	ID     uint      `gorm:"primaryKey" json:"-"`                                // Primary key
	ItemID uint      `gorm:"not null;uniqueIndex:idx_reviews_item_user" json:"-"` // Rated item
	UserID uint      `gorm:"not null;uniqueIndex:idx_reviews_item_user" json:"-"` // Rating user; (item, user) is unique
	Rating int16     `gorm:"not null" json:"rating"`                             // Clamped to [1,10] on write
	Date   time.Time `gorm:"not null;default:now()" json:"date"`                 // Set on insert, bumped on re-rate
}

// ItemRating is one row of an item's rating history: who rated it, what and when.
type ItemRating struct {
	User   User      `json:"user"`
	Rating int16     `json:"rating"`
	Date   time.Time `json:"date"`
}

// UserRating is one row of a user's rating history: the scored item, the
// user's rating and when it was given.
type UserRating struct {
	Item   ScoredItem `json:"item"`
	Rating int16      `json:"rating"`
	Date   time.Time  `json:"date"`
}
