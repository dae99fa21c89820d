package services

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, email, password, confirmPassword string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	DeleteUser(userID string) error
}

// CategoryWithCount is a category annotated with the number of live
// transactions that reference it. The count is a read-side join, not a
// stored field.
type CategoryWithCount struct {
	models.Category
	TransactionCount int64 `json:"transaction_count"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string) (*models.Category, error)
	RenameCategory(userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	GetUserCategories(userID string) ([]CategoryWithCount, error)
}

// TransactionInput carries the raw fields of a transaction create/update
// exactly as the caller supplies them: the amount as a decimal string and
// the date as a YYYY-MM-DD calendar date string. Parsing and validation
// happen inside the service, before any write.
type TransactionInput struct {
	CategoryID  string
	Description string
	Amount      string
	Type        string
	Date        string
}

// TransactionFilter holds display filters for listing transactions.
// Type is "all", "income", or "expense"; CategoryID is "all" or a category
// id. Filters are conjunctive and never influence summary totals.
type TransactionFilter struct {
	Type       string
	CategoryID string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	GetUserTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// Totals holds the aggregated figures for a user's full transaction set.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// SummaryServicer defines the contract for read-side aggregation.
type SummaryServicer interface {
	GetTotals(userID string) (*Totals, error)
}
