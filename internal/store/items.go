package store

import (
	"context"
	"strings"

	"catalog_system/internal/domain"
)

const scoredItemColumns = "locator, title, description, score, review_count, rank, popularity"

// GetItem looks up one item through the items_score view. Absence is a
// normal (nil, nil) result, not an error.
func (s *Store) GetItem(ctx context.Context, locator string) (*domain.ScoredItem, error) {
	var item domain.ScoredItem
	tx := s.db.WithContext(ctx).Raw(
		"SELECT "+scoredItemColumns+" FROM items_score WHERE locator = ? LIMIT 1", locator).Scan(&item)
	if tx.Error != nil {
		return nil, internal(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &item, nil
}

// ListItems builds one window of the catalog. With a search term, items are
// filtered by trigram similarity of the title and ordered by similarity then
// score; without one, by score. A page outside [0, NumberOfPages) yields
// (nil, nil) - including page 0 of an empty result. Count and fetch are two
// round trips and are not transactionally consistent with each other.
func (s *Store) ListItems(ctx context.Context, page int, query string) (*domain.Page[domain.ScoredItem], error) {
	db := s.db.WithContext(ctx)
	var total int64
	var err error
	if query != "" {
		err = db.Raw("SELECT COUNT(*) FROM items WHERE similarity(title, ?) >= ?",
			query, s.similarityThreshold).Scan(&total).Error
	} else {
		err = db.Model(&domain.Item{}).Count(&total).Error
	}
	if err != nil {
		return nil, internal(err)
	}
	pages := pageCount(total, ItemsPerPage)
	if page < 0 || page >= pages {
		return nil, nil
	}
	items := make([]domain.ScoredItem, 0, ItemsPerPage)
	if query != "" {
		err = db.Raw("SELECT "+scoredItemColumns+` FROM items_score
			WHERE similarity(title, ?) >= ?
			ORDER BY similarity(title, ?) DESC, score DESC, locator
			LIMIT ? OFFSET ?`,
			query, s.similarityThreshold, query, ItemsPerPage, ItemsPerPage*page).Scan(&items).Error
	} else {
		err = db.Raw("SELECT "+scoredItemColumns+` FROM items_score
			ORDER BY score DESC, locator
			LIMIT ? OFFSET ?`,
			ItemsPerPage, ItemsPerPage*page).Scan(&items).Error
	}
	if err != nil {
		return nil, internal(err)
	}
	return &domain.Page[domain.ScoredItem]{
		Target:        "/items",
		Items:         items,
		CurrentPage:   page,
		NumberOfPages: pages,
		Query:         query,
	}, nil
}

// AddItem creates a catalog item. Admin-only; the authorization policy is
// enforced by the caller.
func (s *Store) AddItem(ctx context.Context, locator, title, description string) error {
	if strings.TrimSpace(locator) == "" || strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return ErrEmptyFields
	}
	if !namePattern.MatchString(locator) {
		return ErrIllegalLocator
	}
	item := domain.Item{Locator: locator, Title: title, Description: description}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return translateDuplicate(err, ErrDuplicateItem)
	}
	return nil
}

// UpdateItem is a partial item update; nil fields are left unchanged.
type UpdateItem struct {
	NewLocator     *string
	NewTitle       *string
	NewDescription *string
}

// EditItem merges the provided fields into the item via COALESCE, so unset
// fields can never overwrite stored values. A no-op rename updates the row
// to its own locator and therefore never conflicts with itself.
func (s *Store) EditItem(ctx context.Context, locator string, upd UpdateItem) error {
	if blank(upd.NewLocator) || blank(upd.NewTitle) || blank(upd.NewDescription) {
		return ErrEmptyFields
	}
	if upd.NewLocator != nil && !namePattern.MatchString(*upd.NewLocator) {
		return ErrIllegalLocator
	}
	err := s.db.WithContext(ctx).Exec(
		`UPDATE items SET
			locator = COALESCE(?, locator),
			title = COALESCE(?, title),
			description = COALESCE(?, description)
		WHERE locator = ?`,
		upd.NewLocator, upd.NewTitle, upd.NewDescription, locator).Error
	if err != nil {
		return translateDuplicate(err, ErrDuplicateItem)
	}
	return nil
}

// RemoveItem deletes an item and, through the FK cascade, its reviews.
// Deleting an absent item is not an error.
func (s *Store) RemoveItem(ctx context.Context, locator string) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM items WHERE locator = ?", locator).Error; err != nil {
		return internal(err)
	}
	return nil
}
