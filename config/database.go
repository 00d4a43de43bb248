package config

import (
	"fmt"

	"github.com/flashdeck/flashdeck-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database named by cfg and runs migrations. Postgres when
// DATABASE_URL is set, a local sqlite file otherwise. The returned handle is
// injected into the store rather than kept as package state.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate registers the join table and auto migrates the schema. Exposed so
// tests can run it against their own in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Flashcard{}, "Tags", &models.FlashcardTag{}); err != nil {
		return fmt.Errorf("failed to set up join table: %w", err)
	}

	err := db.AutoMigrate(&models.Flashcard{}, &models.Tag{}, &models.FlashcardTag{})
	if err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}

	return nil
}
