package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// dateLayout is the calendar date format accepted on the wire.
const dateLayout = "2006-01-02"

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// parsedTransaction is the typed result of validating a TransactionInput.
type parsedTransaction struct {
	amount decimal.Decimal
	txType models.TransactionType
	date   time.Time
}

// parseTransactionInput validates the raw input fields and converts them to
// typed values. It performs no reads or writes; every check happens before
// the caller touches the store.
func parseTransactionInput(input TransactionInput) (*parsedTransaction, error) {
	if input.CategoryID == "" || strings.TrimSpace(input.Description) == "" ||
		input.Amount == "" || input.Type == "" || input.Date == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "all fields are required")
	}
	if len(input.Description) > 200 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must be at most 200 characters")
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative number")
	}

	txType := models.TransactionType(input.Type)
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}

	return &parsedTransaction{amount: amount, txType: txType, date: date}, nil
}

// resolveCategory verifies that the referenced category exists and belongs
// to the acting user. A category owned by someone else reports the same
// CATEGORY_NOT_FOUND as a missing one, so ids of other users' categories are
// never confirmed to exist.
func (s *transactionService) resolveCategory(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateTransaction records a new transaction for the user. The user must
// already own at least one category.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	var categoryCount int64
	if err := s.db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&categoryCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categoryCount == 0 {
		return nil, apperrors.ErrNoCategories
	}

	parsed, err := parseTransactionInput(input)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  category.ID,
		Description: input.Description,
		Amount:      parsed.amount,
		Type:        parsed.txType,
		Date:        parsed.date,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactionByID retrieves a transaction and verifies ownership.
// Missing ids and ownership mismatches stay distinct conditions.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transaction.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &transaction, nil
}

// UpdateTransaction replaces all five fields of a transaction together.
// There is no partial-field update path.
func (s *transactionService) UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	parsed, err := parseTransactionInput(input)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"category_id": category.ID,
		"description": input.Description,
		"amount":      parsed.amount,
		"type":        parsed.txType,
		"date":        parsed.date,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction. Unlike categories, transactions
// have no dependents, so the delete is unconditional.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions ordered by date descending. Filter values outside the known
// set behave as "all", matching the dashboard's dropdown semantics.
func (s *transactionService) GetUserTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	switch f.Type {
	case string(models.TransactionTypeIncome), string(models.TransactionTypeExpense):
		q = q.Where("type = ?", f.Type)
	}
	if f.CategoryID != "" && f.CategoryID != "all" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	return q
}
