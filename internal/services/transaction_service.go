package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// transactionService handles ledger entry ingestion and the monthly
// aggregation queries behind the breakdown charts.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	tagService      TagServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer, tagService TagServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
		tagService:      tagService,
	}
}

// Create validates and persists a new ledger entry, resolving its category
// and optional tag by name. Validation failures happen before any write, so
// a rejected entry never creates a category or tag as a side effect. The
// resolution and the insert share one database transaction; a failed insert
// rolls the resolved names back too.
func (s *transactionService) Create(ctx context.Context, userID uint, input TransactionInput) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive number")
	}
	kind, ok := models.ParseTransactionType(input.Type)
	if !ok {
		return nil, apperrors.ErrInvalidEntryType
	}
	if strings.TrimSpace(input.CategoryName) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	var created *models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := s.categoryService.ResolveOrCreateTx(tx, userID, input.CategoryName)
		if err != nil {
			return err
		}

		var tag *models.Tag
		var tagID *uint
		if strings.TrimSpace(input.TagName) != "" {
			tag, err = s.tagService.ResolveOrCreateTx(tx, userID, input.TagName)
			if err != nil {
				return err
			}
			tagID = &tag.ID
		}

		entry := &models.Transaction{
			UserID:     userID,
			Date:       input.Date,
			Amount:     input.Amount,
			Type:       kind,
			CategoryID: category.ID,
			TagID:      tagID,
			Memo:       input.Memo,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		entry.Category = *category
		entry.Tag = tag
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// entryRow is the projection the breakdown query fetches; sums are
// accumulated in Go with decimal arithmetic rather than SQL SUM so monetary
// totals never pass through the driver's float aggregation.
type entryRow struct {
	CategoryID uint
	Type       models.TransactionType
	Amount     decimal.Decimal
}

// MonthlyBreakdown returns per-category income and expense totals for the
// given month. The category axis covers every category the user owns, in
// name order, zero-filled where the month has no matching activity, so
// chart legends stay stable across months.
//
// The optional tag filter partitions the month's entries: "only" keeps
// entries carrying the named tag, "exclude" keeps untagged entries plus
// entries tagged differently. The two modes sum to the unfiltered totals.
func (s *transactionService) MonthlyBreakdown(ctx context.Context, userID uint, year, month int, filter *TagFilter) (*MonthlyBreakdown, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}

	categories, err := s.categoryService.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	start, end := monthWindow(year, month)
	query := db.Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end)

	// An unknown tag name is not an error: "only" then matches nothing and
	// "exclude" excludes nothing.
	matchesNothing := false
	if filter != nil {
		var tag models.Tag
		err := db.Where("user_id = ? AND name = ?", userID, filter.Name).First(&tag).Error
		switch {
		case err == nil:
			if filter.Condition == TagConditionOnly {
				query = query.Where("tag_id = ?", tag.ID)
			} else {
				query = query.Where(s.db.Where("tag_id IS NULL").Or("tag_id <> ?", tag.ID))
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			matchesNothing = filter.Condition == TagConditionOnly
		default:
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	income := make(map[uint]decimal.Decimal)
	expense := make(map[uint]decimal.Decimal)
	if !matchesNothing {
		var rows []entryRow
		if err := query.Select("category_id, type, amount").Scan(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, row := range rows {
			if row.Type == models.TransactionTypeIncome {
				income[row.CategoryID] = income[row.CategoryID].Add(row.Amount)
			} else {
				expense[row.CategoryID] = expense[row.CategoryID].Add(row.Amount)
			}
		}
	}

	breakdown := &MonthlyBreakdown{
		Categories: make([]string, len(categories)),
		Income:     make([]decimal.Decimal, len(categories)),
		Expense:    make([]decimal.Decimal, len(categories)),
	}
	for i, category := range categories {
		breakdown.Categories[i] = category.Name
		breakdown.Income[i] = income[category.ID]
		breakdown.Expense[i] = expense[category.ID]
	}
	return breakdown, nil
}

// ListMonth returns the user's ledger entries for the given month with
// category and tag names populated, ascending by date.
func (s *transactionService) ListMonth(ctx context.Context, userID uint, year, month int) ([]models.Transaction, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}

	start, end := monthWindow(year, month)
	var transactions []models.Transaction
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Tag").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// monthWindow returns the half-open [start, end) range covering the given
// calendar month in local time. AddDate handles 28-31 day months and leap
// years; the last second of the month falls inside the window, the first
// instant of the next month outside it.
func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

func validateMonth(year, month int) error {
	if year < 1 || year > 9999 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year is out of range")
	}
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	return nil
}
