package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ResolveOrCreate returns the category with the given name for the user,
// creating it if it does not exist yet.
func (s *categoryService) ResolveOrCreate(ctx context.Context, userID uint, name string) (*models.Category, error) {
	return s.ResolveOrCreateTx(s.db.WithContext(ctx), userID, name)
}

// ResolveOrCreateTx is ResolveOrCreate running on the given connection, so
// transaction ingestion can resolve categories inside its own transaction.
//
// The insert uses ON CONFLICT DO NOTHING against the (user_id, name) unique
// index and then reads back the surviving row. Two concurrent calls with the
// same name therefore converge on a single row regardless of how many server
// instances are running; a read-then-write sequence here would race.
func (s *categoryService) ResolveOrCreateTx(tx *gorm.DB, userID uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.Category{UserID: userID, Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(category).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// ID stays zero when the insert hit the conflict; fetch the existing row.
	if category.ID == 0 {
		if err := tx.Where("user_id = ? AND name = ?", userID, name).First(category).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// List returns all of the user's categories ordered by name ascending.
func (s *categoryService) List(ctx context.Context, userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
