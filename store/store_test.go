package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flashdeck/flashdeck-api/config"
	"github.com/flashdeck/flashdeck-api/models"
	"github.com/flashdeck/flashdeck-api/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A fresh connection would get a fresh empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return store.New(db)
}

func mustCreateTag(t *testing.T, s *store.Store, owner, name, color string) *models.Tag {
	t.Helper()
	tag, err := s.CreateTag(owner, name, color)
	require.NoError(t, err)
	return tag
}

func mustCreateCard(t *testing.T, s *store.Store, owner, front, back string, tagIDs []uint) *models.Flashcard {
	t.Helper()
	card, err := s.CreateFlashcard(owner, front, back, tagIDs)
	require.NoError(t, err)
	return card
}
