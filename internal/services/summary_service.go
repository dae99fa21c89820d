package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// summaryService computes read-side aggregates over a user's transactions.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// GetTotals sums the user's full transaction set, partitioned on transaction
// type. The income and expense figures are sums of non-negative magnitudes,
// never signed summation, and display filters have no effect here.
func (s *summaryService) GetTotals(userID string) (*Totals, error) {
	var rows []struct {
		Type   models.TransactionType
		Amount decimal.Decimal
	}
	if err := s.db.Model(&models.Transaction{}).
		Select("type, amount").
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := &Totals{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			totals.Income = totals.Income.Add(row.Amount)
		case models.TransactionTypeExpense:
			totals.Expenses = totals.Expenses.Add(row.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expenses)

	return totals, nil
}
