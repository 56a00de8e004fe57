package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
)

// TransactionHandler handles ledger entry requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// ledger entry. Field names follow the form the UI submits; amount accepts
// either a JSON number or a numeric string and is decoded without passing
// through a float.
type CreateTransactionRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type" binding:"required,entry_type"`
	CategoryName string          `json:"categoryName" binding:"required,max=100"`
	TagName      string          `json:"tagName" binding:"max=100"`
	Memo         string          `json:"memo" binding:"max=500"`
	Date         string          `json:"date" binding:"required"`
}

// TransactionResponse represents a ledger entry in the response
type TransactionResponse struct {
	ID       uint            `json:"id"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Tag      string          `json:"tag"`
	Memo     string          `json:"memo"`
}

func toTransactionResponse(t *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:       t.ID,
		Date:     t.Date.Format("2006-01-02"),
		Amount:   t.Amount,
		Type:     string(t.Type),
		Category: t.Category.Name,
		Memo:     t.Memo,
	}
	if t.Tag != nil {
		resp.Tag = t.Tag.Name
	}
	return resp
}

// breakdownQuery holds the query parameters of the monthly breakdown endpoint.
type breakdownQuery struct {
	Year      int    `form:"year" binding:"required,min=1,max=9999"`
	Month     int    `form:"month" binding:"required,min=1,max=12"`
	Tag       string `form:"tag"`
	Condition string `form:"condition" binding:"omitempty,tag_condition"`
}

// monthQuery holds the query parameters of the monthly listing endpoint.
type monthQuery struct {
	Year  int `form:"year" binding:"required,min=1,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// CreateTransaction records a new ledger entry
// @Summary     Create a transaction
// @Description Record an income or expense entry, resolving category and tag by name
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.Create(c.Request.Context(), userID, services.TransactionInput{
		Amount:       req.Amount,
		Type:         req.Type,
		CategoryName: req.CategoryName,
		TagName:      req.TagName,
		Memo:         req.Memo,
		Date:         date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": toTransactionResponse(transaction)})
}

// GetMonthlyBreakdown returns per-category income/expense totals for a month
// @Summary     Monthly category breakdown
// @Description Per-category income and expense totals for a month, covering every category the user owns, with optional tag filtering
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Param       tag query string false "Tag name to filter by"
// @Param       condition query string false "Tag filter mode: only or exclude" Enums(only, exclude)
// @Success     200 {object} services.MonthlyBreakdown "Index-aligned category/income/expense arrays"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetMonthlyBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q breakdownQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter *services.TagFilter
	if q.Tag != "" {
		// The UI's default filter mode is "only".
		condition := services.TagConditionOnly
		if q.Condition != "" {
			condition = services.TagCondition(q.Condition)
		}
		filter = &services.TagFilter{Name: q.Tag, Condition: condition}
	}

	breakdown, err := h.transactionService.MonthlyBreakdown(c.Request.Context(), userID, q.Year, q.Month, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// ListTransactions returns the month's ledger entries
// @Summary     List a month's transactions
// @Description Ledger entries for the given month with category and tag names, ascending by date
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} map[string][]TransactionResponse "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/list [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions, err := h.transactionService.ListMonth(c.Request.Context(), userID, q.Year, q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		out[i] = toTransactionResponse(&transactions[i])
	}
	c.JSON(http.StatusOK, gin.H{"transactions": out})
}
