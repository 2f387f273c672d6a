// Package store is the persistence layer: gorm models for every entity and
// typed accessors grouped by concern.
package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the database handle with typed accessors.
type Store struct {
	db *gorm.DB
}

// Open connects to the database and migrates the schema. driver is "sqlite"
// or "postgres".
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("could not open %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(
		&User{}, &Session{},
		&Holding{}, &WatchlistItem{},
		&NewsArticle{}, &NewsHighlight{}, &NewsSummary{}, &NotesRepost{},
		&Follow{}, &OverseerLink{},
		&Family{}, &FamilyMember{}, &FamilyInvite{},
		&DiscountPosition{},
	); err != nil {
		return nil, fmt.Errorf("could not migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens a throwaway named in-memory sqlite store, for tests.
// Distinct names give fully isolated databases.
func OpenMemory(name string) (*Store, error) {
	return Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}
