package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// DashboardHandler composes the dashboard read: a filtered transaction page,
// the unfiltered totals, and the category list for filter population.
type DashboardHandler struct {
	transactionService services.TransactionServicer
	categoryService    services.CategoryServicer
	summaryService     services.SummaryServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	transactionService services.TransactionServicer,
	categoryService services.CategoryServicer,
	summaryService services.SummaryServicer,
) *DashboardHandler {
	return &DashboardHandler{
		transactionService: transactionService,
		categoryService:    categoryService,
		summaryService:     summaryService,
	}
}

// GetDashboard returns the dashboard view for the authenticated user.
// The totals are always computed over the full transaction set; the filters
// only narrow the listed rows.
// @Summary     Get dashboard
// @Description Filtered transaction list, unfiltered totals, and the user's categories
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       filter query string false "Transaction type filter (all/income/expense)"
// @Param       category query string false "Category ID filter (all or a category id)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Dashboard data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
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

	transactions, err := h.transactionService.GetUserTransactions(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.summaryService.GetTotals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetUserCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionPage := pagination.NewPageResponse(
		toTransactionResponses(transactions.Data),
		transactions.Page, transactions.PageSize, transactions.TotalItems,
	)

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactionPage,
		"totals":       totals,
		"categories":   categories,
	})
}
