// Package store implements owner-scoped persistence for flashcards and tags.
// Every operation takes the caller's owner id and filters by it; rows
// belonging to other owners are indistinguishable from missing rows.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that a row does not exist or is not owned by the
	// caller.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownTag reports a tag id that does not exist under the caller.
	ErrUnknownTag = errors.New("unknown tag id")

	// ErrDuplicateTagName reports a tag name already used by the caller.
	ErrDuplicateTagName = errors.New("tag name already in use")
)

// Store wraps a database handle. Constructed once in main and injected into
// the handlers; tests construct their own against an in-memory database.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
