package models

// Tag is an optional secondary label for cross-cutting filtering of
// transactions ("business trip"). Same uniqueness and lazy-creation
// semantics as Category.
type Tag struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"name"`

	Transactions []Transaction `gorm:"foreignKey:TagID" json:"transactions,omitempty"`
}
