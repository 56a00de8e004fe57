package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the stored kind of a ledger entry.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// ParseTransactionType maps the two-valued API enum ("income"/"expense")
// to the stored transaction kind.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch s {
	case "income":
		return TransactionTypeIncome, true
	case "expense":
		return TransactionTypeExpense, true
	}
	return "", false
}

// APIValue returns the API-level enum value for the stored kind.
func (t TransactionType) APIValue() string {
	if t == TransactionTypeIncome {
		return "income"
	}
	return "expense"
}

// Transaction represents a single ledger entry. Entries are immutable once
// created: there are no update or delete operations. Amount uses exact
// decimal arithmetic; monetary values must never pass through binary floats.
type Transaction struct {
	Base
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Type       TransactionType `gorm:"not null" json:"type"`
	CategoryID uint            `gorm:"not null" json:"category_id"`
	TagID      *uint           `json:"tag_id,omitempty"`
	Memo       string          `gorm:"size:500" json:"memo"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tag      *Tag     `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}
