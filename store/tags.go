package store

import (
	"errors"

	"github.com/flashdeck/flashdeck-api/models"
	"gorm.io/gorm"
)

// TagPatch carries the optional fields of a partial tag update.
type TagPatch struct {
	Name  *string
	Color *string
}

// AllTags returns every tag owned by ownerID.
func (s *Store) AllTags(ownerID string) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Where("user_id = ?", ownerID).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// TagByID returns one owned tag, or ErrNotFound.
func (s *Store) TagByID(id uint, ownerID string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag inserts a tag. Names are unique within one owner; a duplicate
// fails with ErrDuplicateTagName before anything is written.
func (s *Store) CreateTag(ownerID, name, color string) (*models.Tag, error) {
	tag := models.Tag{Name: name, Color: color, UserID: ownerID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkTagNameFree(tx, ownerID, name, 0); err != nil {
			return err
		}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// UpdateTag applies a partial update to an owned tag.
func (s *Store) UpdateTag(id uint, ownerID string, patch TagPatch) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.Name != nil && *patch.Name != tag.Name {
			if err := checkTagNameFree(tx, ownerID, *patch.Name, tag.ID); err != nil {
				return err
			}
			tag.Name = *patch.Name
		}
		if patch.Color != nil {
			tag.Color = *patch.Color
		}

		return tx.Save(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag removes an owned tag and its associations, returning a snapshot
// of the deleted row.
func (s *Store) DeleteTag(id uint, ownerID string) (*models.Tag, error) {
	var snapshot models.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&snapshot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("tag_id = ?", snapshot.ID).Delete(&models.FlashcardTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, snapshot.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// checkTagNameFree fails with ErrDuplicateTagName when another of the
// owner's tags already uses name. excludeID skips the tag being renamed.
func checkTagNameFree(tx *gorm.DB, ownerID, name string, excludeID uint) error {
	var count int64
	err := tx.Model(&models.Tag{}).
		Where("user_id = ? AND name = ? AND id <> ?", ownerID, name, excludeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateTagName
	}
	return nil
}
