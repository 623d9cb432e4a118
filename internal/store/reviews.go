package store

import (
	"context"
	"time"

	"catalog_system/internal/domain"
)

// clampRating forces a rating into [1,10].
func clampRating(rating int16) int16 {
	if rating < 1 {
		return 1
	}
	if rating > 10 {
		return 10
	}
	return rating
}

// Rate records the caller's rating for an item: a native upsert keyed on the
// (item, user) uniqueness constraint, so a concurrent first-rate and re-rate
// cannot race. A re-rate replaces the rating and bumps the date to now.
func (s *Store) Rate(ctx context.Context, locator, username string, rating int16) error {
	err := s.db.WithContext(ctx).Exec(
		`INSERT INTO reviews (item_id, user_id, rating, date)
		VALUES (
			(SELECT id FROM items WHERE locator = ? LIMIT 1),
			(SELECT id FROM users WHERE username = ? LIMIT 1),
			?, now())
		ON CONFLICT (item_id, user_id) DO UPDATE SET rating = EXCLUDED.rating, date = now()`,
		locator, username, clampRating(rating)).Error
	if err != nil {
		return internal(err)
	}
	return nil
}

// Unrate removes the caller's rating. Removing a rating that does not exist
// is a no-op success.
func (s *Store) Unrate(ctx context.Context, locator, username string) error {
	err := s.db.WithContext(ctx).Exec(
		`DELETE FROM reviews
		WHERE item_id = (SELECT id FROM items WHERE locator = ? LIMIT 1)
		AND user_id = (SELECT id FROM users WHERE username = ? LIMIT 1)`,
		locator, username).Error
	if err != nil {
		return internal(err)
	}
	return nil
}

// GetRating returns the caller's own rating for an item, or nil when they
// have not rated it.
func (s *Store) GetRating(ctx context.Context, locator, username string) (*int16, error) {
	var rating int16
	tx := s.db.WithContext(ctx).Raw(
		`SELECT rating FROM reviews
		WHERE item_id = (SELECT id FROM items WHERE locator = ? LIMIT 1)
		AND user_id = (SELECT id FROM users WHERE username = ? LIMIT 1)
		LIMIT 1`,
		locator, username).Scan(&rating)
	if tx.Error != nil {
		return nil, internal(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &rating, nil
}

type itemRatingRow struct {
	Username  string
	IsAdmin   bool
	AvatarHue int16
	HasAvatar bool
	Rating    int16
	Date      time.Time
}

// ItemRatings builds one window of an item's rating history, most recent
// first. Page size 3; same no-page rule as the catalog listings.
func (s *Store) ItemRatings(ctx context.Context, locator string, page int) (*domain.Page[domain.ItemRating], error) {
	db := s.db.WithContext(ctx)
	var total int64
	err := db.Raw(
		"SELECT COUNT(*) FROM reviews WHERE item_id = (SELECT id FROM items WHERE locator = ? LIMIT 1)",
		locator).Scan(&total).Error
	if err != nil {
		return nil, internal(err)
	}
	pages := pageCount(total, RatingsPerPage)
	if page < 0 || page >= pages {
		return nil, nil
	}
	var rows []itemRatingRow
	err = db.Raw(
		`SELECT u.username, u.is_admin, u.avatar_hue, u.has_avatar, r.rating, r.date
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.item_id = (SELECT id FROM items WHERE locator = ? LIMIT 1)
		ORDER BY r.date DESC
		LIMIT ? OFFSET ?`,
		locator, RatingsPerPage, RatingsPerPage*page).Scan(&rows).Error
	if err != nil {
		return nil, internal(err)
	}
	ratings := make([]domain.ItemRating, len(rows))
	for i, row := range rows {
		ratings[i] = domain.ItemRating{
			User: domain.User{
				Username:  row.Username,
				IsAdmin:   row.IsAdmin,
				AvatarHue: row.AvatarHue,
				HasAvatar: row.HasAvatar,
			},
			Rating: row.Rating,
			Date:   row.Date,
		}
	}
	return &domain.Page[domain.ItemRating]{
		Target:        "/items/" + locator,
		Items:         ratings,
		CurrentPage:   page,
		NumberOfPages: pages,
	}, nil
}

type userRatingRow struct {
	Locator     string
	Title       string
	Description string
	Score       float64
	ReviewCount int64
	Rank        int64
	Popularity  int64
	Rating      int16
	Date        time.Time
}

// UserRatings builds one window of a user's rating history, most recent
// first. Items come through the items_score view so the aggregates here are
// the same ones GetItem and ListItems report.
func (s *Store) UserRatings(ctx context.Context, username string, page int) (*domain.Page[domain.UserRating], error) {
	db := s.db.WithContext(ctx)
	var total int64
	err := db.Raw(
		"SELECT COUNT(*) FROM reviews WHERE user_id = (SELECT id FROM users WHERE username = ? LIMIT 1)",
		username).Scan(&total).Error
	if err != nil {
		return nil, internal(err)
	}
	pages := pageCount(total, RatingsPerPage)
	if page < 0 || page >= pages {
		return nil, nil
	}
	var rows []userRatingRow
	err = db.Raw(
		`SELECT i.locator, i.title, i.description, i.score, i.review_count, i.rank, i.popularity, r.rating, r.date
		FROM reviews r
		JOIN items_score i ON r.item_id = i.id
		WHERE r.user_id = (SELECT id FROM users WHERE username = ? LIMIT 1)
		ORDER BY r.date DESC
		LIMIT ? OFFSET ?`,
		username, RatingsPerPage, RatingsPerPage*page).Scan(&rows).Error
	if err != nil {
		return nil, internal(err)
	}
	ratings := make([]domain.UserRating, len(rows))
	for i, row := range rows {
		ratings[i] = domain.UserRating{
			Item: domain.ScoredItem{
				Locator:     row.Locator,
				Title:       row.Title,
				Description: row.Description,
				Score:       row.Score,
				ReviewCount: row.ReviewCount,
				Rank:        row.Rank,
				Popularity:  row.Popularity,
			},
			Rating: row.Rating,
			Date:   row.Date,
		}
	}
	return &domain.Page[domain.UserRating]{
		Target:        "/users/" + username,
		Items:         ratings,
		CurrentPage:   page,
		NumberOfPages: pages,
	}, nil
}
