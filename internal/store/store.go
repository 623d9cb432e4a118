package store

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Fixed page sizes for result windows.
const (
	ItemsPerPage   = 12
	UsersPerPage   = 12
	RatingsPerPage = 3
)

// DefaultSimilarityThreshold is pg_trgm's default match cutoff.
const DefaultSimilarityThreshold = 0.3

// namePattern is the shared shape of usernames and item locators.
var namePattern = regexp.MustCompile(`^\w+$`)

// Store is the query & ranking layer over the relational store. It holds no
// mutable state of its own; registration uniqueness, rename uniqueness and
// the rate upsert are all settled by database constraints, so a unique
// violation is an expected outcome here, not a fatal one. The *gorm.DB must
// be opened with TranslateError so those violations surface as
// gorm.ErrDuplicatedKey.
type Store struct {
	db                  *gorm.DB
	similarityThreshold float64
}

// New wraps an open database handle. threshold is the trigram similarity
// cutoff for fuzzy search; pass 0 for the pg_trgm default.
func New(db *gorm.DB, threshold float64) *Store {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Store{db: db, similarityThreshold: threshold}
}

// pageCount returns ceil(total / pageSize).
func pageCount(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// blank reports whether an optional field was provided but is empty after
// trimming. Unset fields are not blank; they mean "leave unchanged".
func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}
