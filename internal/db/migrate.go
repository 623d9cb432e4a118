package db

import (
	"catalog_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/gorm"            // GORM ORM library
)

// schemaDDL holds what AutoMigrate cannot express: the trigram extension and
// indexes for fuzzy search, and the canonical aggregation view. items_score
// is the single definition of score, review_count, rank and popularity;
// every read of those aggregates goes through it. Statements run one at a
// time so the driver never sees a multi-statement string.
var schemaDDL = []string{
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,

	`CREATE INDEX IF NOT EXISTS idx_items_title_trgm ON items USING gin (title gin_trgm_ops)`,

	`CREATE INDEX IF NOT EXISTS idx_users_username_trgm ON users USING gin (username gin_trgm_ops)`,

	`CREATE OR REPLACE VIEW items_score AS
	SELECT s.id, s.locator, s.title, s.description, s.score, s.review_count,
		DENSE_RANK() OVER (ORDER BY s.score DESC) AS rank,
		DENSE_RANK() OVER (ORDER BY s.review_count DESC) AS popularity
	FROM (
		SELECT i.id, i.locator, i.title, i.description,
			COALESCE(AVG(r.rating), 0)::float8 AS score,
			COUNT(r.id) AS review_count
		FROM items i
		LEFT JOIN reviews r ON r.item_id = i.id
		GROUP BY i.id, i.locator, i.title, i.description
	) s`,
}

// AutoMigrate brings an open database up to the current schema: model
// migration first, then the raw DDL.
func AutoMigrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Item{}, &domain.Review{}); err != nil {
		return err
	}
	for _, stmt := range schemaDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Migrate connects with the given connection string and performs the full
// schema migration.
func Migrate(databaseURL string) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
