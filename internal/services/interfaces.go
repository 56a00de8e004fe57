package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"kakeibo/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	StoreRefreshTokenHash(ctx context.Context, userID uint, tokenHash string) error
	GetRefreshTokenHash(ctx context.Context, userID uint) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ResolveOrCreate(ctx context.Context, userID uint, name string) (*models.Category, error)
	ResolveOrCreateTx(tx *gorm.DB, userID uint, name string) (*models.Category, error)
	List(ctx context.Context, userID uint) ([]models.Category, error)
}

// TagServicer defines the contract for tag-related business logic.
type TagServicer interface {
	ResolveOrCreate(ctx context.Context, userID uint, name string) (*models.Tag, error)
	ResolveOrCreateTx(tx *gorm.DB, userID uint, name string) (*models.Tag, error)
	List(ctx context.Context, userID uint) ([]models.Tag, error)
}

// TagCondition selects how a tag filter is applied to the monthly breakdown.
type TagCondition string

const (
	// TagConditionOnly includes only transactions carrying the named tag;
	// untagged transactions are excluded.
	TagConditionOnly TagCondition = "only"
	// TagConditionExclude includes untagged transactions and transactions
	// whose tag differs from the named one.
	TagConditionExclude TagCondition = "exclude"
)

// TagFilter narrows a monthly breakdown to (or away from) one tag by name.
type TagFilter struct {
	Name      string
	Condition TagCondition
}

// TransactionInput carries the fields of a new ledger entry as submitted by
// the client. Type is the API-level two-valued enum ("income"/"expense").
type TransactionInput struct {
	Amount       decimal.Decimal
	Type         string
	CategoryName string
	TagName      string
	Memo         string
	Date         time.Time
}

// MonthlyBreakdown holds per-category income and expense totals for one
// month. The three slices are index-aligned and cover every category the
// user owns, zero-filled for categories with no matching activity, ordered
// by category name ascending.
type MonthlyBreakdown struct {
	Categories []string          `json:"categories"`
	Income     []decimal.Decimal `json:"income"`
	Expense    []decimal.Decimal `json:"expense"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	Create(ctx context.Context, userID uint, input TransactionInput) (*models.Transaction, error)
	MonthlyBreakdown(ctx context.Context, userID uint, year, month int, filter *TagFilter) (*MonthlyBreakdown, error)
	ListMonth(ctx context.Context, userID uint, year, month int) ([]models.Transaction, error)
}
