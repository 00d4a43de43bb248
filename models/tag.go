package models

// Tag labels flashcards for filtering. Names are unique per owner, not
// globally.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null;size:100;uniqueIndex:idx_tags_owner_name" json:"name"`
	Color  string `gorm:"not null;size:20" json:"color"`
	UserID string `gorm:"not null;size:100;uniqueIndex:idx_tags_owner_name" json:"user_id"`
}
