package store

import (
	"errors"
	"strings"

	"github.com/flashdeck/flashdeck-api/models"
	"gorm.io/gorm"
)

// FlashcardPatch carries the optional fields of a partial update. Nil fields
// are left as they are.
type FlashcardPatch struct {
	Front *string
	Back  *string
}

// AllFlashcards returns every flashcard owned by ownerID, newest first, with
// tags hydrated.
func (s *Store) AllFlashcards(ownerID string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := s.db.Preload("Tags").
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return normalizeAll(cards), nil
}

// FlashcardByID returns one owned flashcard with tags hydrated, or
// ErrNotFound.
func (s *Store) FlashcardByID(id uint, ownerID string) (*models.Flashcard, error) {
	return flashcardByID(s.db, id, ownerID)
}

// SearchFlashcards filters the owner's flashcards by a case-insensitive
// substring over front/back and by tag membership. Tag filtering is OR across
// the given ids: a card qualifies when it carries at least one of them. The
// membership set is resolved in a separate lookup over the join table and
// intersected with the text filter; when it resolves to nothing the search
// short-circuits to an empty result.
func (s *Store) SearchFlashcards(ownerID, query string, tagIDs []uint) ([]models.Flashcard, error) {
	tx := s.db.Preload("Tags").Where("user_id = ?", ownerID)

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where("LOWER(front) LIKE ? OR LOWER(back) LIKE ?", pattern, pattern)
	}

	if len(tagIDs) > 0 {
		var ids []uint
		result := s.db.Model(&models.FlashcardTag{}).
			Where("tag_id IN ?", tagIDs).
			Distinct().
			Pluck("flashcard_id", &ids)
		if result.Error != nil {
			return nil, result.Error
		}
		if len(ids) == 0 {
			return []models.Flashcard{}, nil
		}
		tx = tx.Where("id IN ?", ids)
	}

	var cards []models.Flashcard
	if err := tx.Order("created_at DESC, id DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return normalizeAll(cards), nil
}

// CreateFlashcard inserts a card and its tag associations in one transaction.
// Tag ids must exist under the owner; an unknown id fails the whole insert
// with ErrUnknownTag.
func (s *Store) CreateFlashcard(ownerID, front, back string, tagIDs []uint) (*models.Flashcard, error) {
	tagIDs = dedupe(tagIDs)

	var cardID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkTagsOwned(tx, ownerID, tagIDs); err != nil {
			return err
		}

		card := models.Flashcard{
			Front:  front,
			Back:   back,
			UserID: ownerID,
		}
		if err := tx.Omit("Tags").Create(&card).Error; err != nil {
			return err
		}
		cardID = card.ID

		return insertAssociations(tx, card.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	return flashcardByID(s.db, cardID, ownerID)
}

// UpdateFlashcard applies a partial field update. When replaceTags is true
// the association set is replaced wholesale with tagIDs (an empty set clears
// it); when false associations are left untouched. Field update and
// association replacement commit together.
func (s *Store) UpdateFlashcard(id uint, ownerID string, patch FlashcardPatch, tagIDs []uint, replaceTags bool) (*models.Flashcard, error) {
	tagIDs = dedupe(tagIDs)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var card models.Flashcard
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&card).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if replaceTags {
			if err := checkTagsOwned(tx, ownerID, tagIDs); err != nil {
				return err
			}
			if err := tx.Where("flashcard_id = ?", card.ID).Delete(&models.FlashcardTag{}).Error; err != nil {
				return err
			}
			if err := insertAssociations(tx, card.ID, tagIDs); err != nil {
				return err
			}
		}

		if patch.Front != nil {
			card.Front = *patch.Front
		}
		if patch.Back != nil {
			card.Back = *patch.Back
		}

		// Save refreshes updated_at even when no field changed
		return tx.Omit("Tags").Save(&card).Error
	})
	if err != nil {
		return nil, err
	}

	return flashcardByID(s.db, id, ownerID)
}

// DeleteFlashcard removes one owned card and its associations, returning a
// snapshot of the deleted row.
func (s *Store) DeleteFlashcard(id uint, ownerID string) (*models.Flashcard, error) {
	var snapshot *models.Flashcard
	err := s.db.Transaction(func(tx *gorm.DB) error {
		card, err := flashcardByID(tx, id, ownerID)
		if err != nil {
			return err
		}
		snapshot = card

		if err := tx.Where("flashcard_id = ?", card.ID).Delete(&models.FlashcardTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Flashcard{}, card.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// DeleteAllFlashcards removes every card owned by ownerID along with the
// associations, returning how many cards were deleted.
func (s *Store) DeleteAllFlashcards(ownerID string) (int64, error) {
	var count int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Flashcard{}).Where("user_id = ?", ownerID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("flashcard_id IN ?", ids).Delete(&models.FlashcardTag{}).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ?", ownerID).Delete(&models.Flashcard{})
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func flashcardByID(tx *gorm.DB, id uint, ownerID string) (*models.Flashcard, error) {
	var card models.Flashcard
	err := tx.Preload("Tags").Where("id = ? AND user_id = ?", id, ownerID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	normalize(&card)
	return &card, nil
}

// checkTagsOwned fails with ErrUnknownTag unless every id names a tag owned
// by ownerID.
func checkTagsOwned(tx *gorm.DB, ownerID string, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	var count int64
	err := tx.Model(&models.Tag{}).
		Where("user_id = ? AND id IN ?", ownerID, tagIDs).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(tagIDs)) {
		return ErrUnknownTag
	}
	return nil
}

func insertAssociations(tx *gorm.DB, cardID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.FlashcardTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.FlashcardTag{FlashcardID: cardID, TagID: tagID})
	}
	return tx.Create(&rows).Error
}

func dedupe(ids []uint) []uint {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// normalize keeps the tags array JSON-friendly: an untagged card serializes
// as [] rather than null.
func normalize(card *models.Flashcard) {
	if card.Tags == nil {
		card.Tags = []models.Tag{}
	}
}

func normalizeAll(cards []models.Flashcard) []models.Flashcard {
	if cards == nil {
		return []models.Flashcard{}
	}
	for i := range cards {
		normalize(&cards[i])
	}
	return cards
}
