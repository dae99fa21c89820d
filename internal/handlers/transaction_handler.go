package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the request payload for creating or updating
// a transaction. All five fields are supplied together; the amount is a
// decimal string and the date a YYYY-MM-DD calendar date.
type TransactionRequest struct {
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required,max=200"`
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"required,transaction_type"`
	Date        string `json:"date" binding:"required,txn_date"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	CategoryID  string                 `json:"category_id"`
	Description string                 `json:"description"`
	Amount      string                 `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Date        string                 `json:"date"`
}

func toTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		Amount:      t.Amount.String(),
		Type:        t.Type,
		Date:        t.Date.Format("2006-01-02"),
	}
}

func toTransactionResponses(transactions []models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}
	return responses
}

func (h *TransactionHandler) transactionInput(req TransactionRequest) services.TransactionInput {
	return services.TransactionInput{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date,
	}
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a new income or expense under one of the user's categories
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input or no categories yet"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, h.transactionInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": toTransactionResponse(transaction)})
}

// UpdateTransaction handles updating a transaction
// @Summary     Update transaction
// @Description Replace all fields of an existing transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body TransactionRequest true "Updated transaction details"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Transaction or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, h.transactionInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": toTransactionResponse(transaction)})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Delete a transaction by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetUserTransactions handles the retrieval of the user's transactions
// @Summary     List transactions
// @Description Get the user's transactions ordered by date descending, optionally filtered by type and category
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       filter query string false "Transaction type filter (all/income/expense)"
// @Param       category query string false "Category ID filter (all or a category id)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {array} TransactionResponse "List of transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		Type:       c.DefaultQuery("filter", "all"),
		CategoryID: c.DefaultQuery("category", "all"),
	}

	result, err := h.transactionService.GetUserTransactions(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := pagination.NewPageResponse(
		toTransactionResponses(result.Data),
		result.Page, result.PageSize, result.TotalItems,
	)
	c.JSON(http.StatusOK, gin.H{"transactions": response})
}
