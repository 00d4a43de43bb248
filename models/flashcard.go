package models

import "time"

// Flashcard represents an individual flashcard. Front and back may embed
// inline ($...$) or display ($$...$$) math markup; the API treats both as
// opaque text.
type Flashcard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Front     string    `gorm:"not null" json:"front"`
	Back      string    `gorm:"not null" json:"back"`
	UserID    string    `gorm:"not null;index;size:100" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags []Tag `gorm:"many2many:flashcard_tags;constraint:OnDelete:CASCADE" json:"tags"`
}
