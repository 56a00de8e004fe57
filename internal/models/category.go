package models

// Category represents a user-defined label classifying a transaction's
// purpose ("Food", "Rent"). Categories are created lazily the first time a
// transaction references them and are never deleted; the composite unique
// index makes concurrent get-or-create calls converge on a single row.
type Category struct {
	Base
	UserID uint   `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"name"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
