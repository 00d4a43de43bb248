package models

// FlashcardTag is the join row between flashcards and tags. Registered as a
// custom join table so updates can replace the association set explicitly.
type FlashcardTag struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	FlashcardID uint `gorm:"not null;uniqueIndex:idx_flashcard_tags_pair;constraint:OnDelete:CASCADE" json:"flashcard_id"`
	TagID       uint `gorm:"not null;uniqueIndex:idx_flashcard_tags_pair;constraint:OnDelete:CASCADE" json:"tag_id"`
}
