package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// validateCategoryName checks the name and the per-user uniqueness rule.
// excludeID is the id of a category being renamed, which is allowed to keep
// its own name; it is empty on create. The match is case-sensitive.
func (s *categoryService) validateCategoryName(userID, name, excludeID string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if len(name) > 50 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must be at most 50 characters")
	}

	query := s.db.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.WithMessage(apperrors.ErrDuplicateCategory, fmt.Sprintf("Category %q already exists", name))
	}
	return nil
}

// CreateCategory creates a new category for the user.
func (s *categoryService) CreateCategory(userID, name string) (*models.Category, error) {
	if err := s.validateCategoryName(userID, name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCategoryByID retrieves a category and verifies ownership. A missing id
// and an ownership mismatch are distinct conditions: the former is
// CATEGORY_NOT_FOUND, the latter FORBIDDEN with a generic message.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &category, nil
}

// RenameCategory changes a category's name, excluding the category itself
// from the duplicate check so renaming to its current name succeeds.
func (s *categoryService) RenameCategory(userID, categoryID, name string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := s.validateCategoryName(userID, name, category.ID); err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// DeleteCategory deletes a category. Deletion is rejected, never cascaded,
// while any transaction still references the category; the count is surfaced
// for the caller's message.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var transactionCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", category.ID).Count(&transactionCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactionCount > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse,
			fmt.Sprintf("Cannot delete category %q - it has %d transaction(s) linked to it", category.Name, transactionCount))
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserCategories returns all of the user's categories ordered by name,
// each annotated with its transaction count.
func (s *categoryService) GetUserCategories(userID string) ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	err := s.db.Model(&models.Category{}).
		Select("categories.*, count(transactions.id) as transaction_count").
		Joins("left join transactions on transactions.category_id = categories.id and transactions.deleted_at is null").
		Where("categories.user_id = ?", userID).
		Group("categories.id").
		Order("categories.name asc").
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
