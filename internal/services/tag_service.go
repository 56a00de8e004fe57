package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// tagService handles tag-related business logic. Tags share the
// get-or-create semantics of categories but stay a separate store: a tag
// name and a category name never collide.
type tagService struct {
	db *gorm.DB
}

// NewTagService creates a new TagServicer.
func NewTagService(db *gorm.DB) TagServicer {
	return &tagService{db: db}
}

// ResolveOrCreate returns the tag with the given name for the user,
// creating it if it does not exist yet.
func (s *tagService) ResolveOrCreate(ctx context.Context, userID uint, name string) (*models.Tag, error) {
	return s.ResolveOrCreateTx(s.db.WithContext(ctx), userID, name)
}

// ResolveOrCreateTx is ResolveOrCreate running on the given connection.
// Safe under concurrent calls with the same name; see the category variant.
func (s *tagService) ResolveOrCreateTx(tx *gorm.DB, userID uint, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tag name is required")
	}

	tag := &models.Tag{UserID: userID, Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(tag).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if tag.ID == 0 {
		if err := tx.Where("user_id = ? AND name = ?", userID, name).First(tag).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return tag, nil
}

// List returns all of the user's tags ordered by name ascending.
func (s *tagService) List(ctx context.Context, userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tags, nil
}
