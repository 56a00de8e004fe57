package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createFn           func(userID uint, input services.TransactionInput) (*models.Transaction, error)
	monthlyBreakdownFn func(userID uint, year, month int, filter *services.TagFilter) (*services.MonthlyBreakdown, error)
	listMonthFn        func(userID uint, year, month int) ([]models.Transaction, error)
}

func (m *mockTransactionService) Create(_ context.Context, userID uint, input services.TransactionInput) (*models.Transaction, error) {
	if m.createFn != nil {
		return m.createFn(userID, input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) MonthlyBreakdown(_ context.Context, userID uint, year, month int, filter *services.TagFilter) (*services.MonthlyBreakdown, error) {
	if m.monthlyBreakdownFn != nil {
		return m.monthlyBreakdownFn(userID, year, month, filter)
	}
	return &services.MonthlyBreakdown{
		Categories: []string{},
		Income:     []decimal.Decimal{},
		Expense:    []decimal.Decimal{},
	}, nil
}

func (m *mockTransactionService) ListMonth(_ context.Context, userID uint, year, month int) ([]models.Transaction, error) {
	if m.listMonthFn != nil {
		return m.listMonthFn(userID, year, month)
	}
	return []models.Transaction{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetMonthlyBreakdown)
	auth.GET("/transactions/list", handler.ListTransactions)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createFn: func(userID uint, input services.TransactionInput) (*models.Transaction, error) {
				return &models.Transaction{
					Base:       models.Base{ID: 1},
					UserID:     userID,
					Date:       input.Date,
					Amount:     input.Amount,
					Type:       models.TransactionTypeExpense,
					CategoryID: 1,
					Category:   models.Category{Base: models.Base{ID: 1}, Name: input.CategoryName},
					Memo:       input.Memo,
				}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":1200.50,"type":"expense","categoryName":"Food","date":"2024-03-05"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["category"] != "Food" {
			t.Errorf("expected category Food, got %v", tx["category"])
		}
		if tx["date"] != "2024-03-05" {
			t.Errorf("expected date 2024-03-05, got %v", tx["date"])
		}
		if tx["type"] != "EXPENSE" {
			t.Errorf("expected type EXPENSE, got %v", tx["type"])
		}
	})

	t.Run("accepts amount as numeric string", func(t *testing.T) {
		var got decimal.Decimal
		svc := &mockTransactionService{
			createFn: func(_ uint, input services.TransactionInput) (*models.Transaction, error) {
				got = input.Amount
				return &models.Transaction{Base: models.Base{ID: 1}, Amount: input.Amount, Date: input.Date}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":"99.99","type":"income","categoryName":"Salary","date":"2024-03-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Equal(decimal.RequireFromString("99.99")) {
			t.Errorf("expected amount 99.99, got %s", got)
		}
	})

	t.Run("returns 400 on bad type", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":10,"type":"transfer","categoryName":"Food","date":"2024-03-05"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":10,"type":"expense","categoryName":"Food","date":"05/03/2024"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when service rejects amount", func(t *testing.T) {
		svc := &mockTransactionService{
			createFn: func(_ uint, _ services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive number")
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":-5,"type":"expense","categoryName":"Food","date":"2024-03-05"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing category", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":10,"type":"expense","date":"2024-03-05"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetMonthlyBreakdown(t *testing.T) {
	t.Run("returns aligned arrays", func(t *testing.T) {
		svc := &mockTransactionService{
			monthlyBreakdownFn: func(_ uint, year, month int, _ *services.TagFilter) (*services.MonthlyBreakdown, error) {
				if year != 2024 || month != 3 {
					t.Errorf("expected 2024-03, got %d-%d", year, month)
				}
				return &services.MonthlyBreakdown{
					Categories: []string{"Food", "Rent"},
					Income:     []decimal.Decimal{decimal.Zero, decimal.RequireFromString("5000")},
					Expense:    []decimal.Decimal{decimal.RequireFromString("1000"), decimal.Zero},
				}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?year=2024&month=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		categories := result["categories"].([]interface{})
		income := result["income"].([]interface{})
		expense := result["expense"].([]interface{})
		if len(categories) != 2 || len(income) != 2 || len(expense) != 2 {
			t.Fatalf("expected aligned arrays of length 2, got %d/%d/%d",
				len(categories), len(income), len(expense))
		}
		if categories[0] != "Food" {
			t.Errorf("expected Food first, got %v", categories[0])
		}
	})

	t.Run("passes tag filter with default condition", func(t *testing.T) {
		var gotFilter *services.TagFilter
		svc := &mockTransactionService{
			monthlyBreakdownFn: func(_ uint, _, _ int, filter *services.TagFilter) (*services.MonthlyBreakdown, error) {
				gotFilter = filter
				return &services.MonthlyBreakdown{}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?year=2024&month=3&tag=trip", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter == nil || gotFilter.Name != "trip" {
			t.Fatalf("expected trip filter, got %+v", gotFilter)
		}
		if gotFilter.Condition != services.TagConditionOnly {
			t.Errorf("expected default condition only, got %s", gotFilter.Condition)
		}
	})

	t.Run("passes exclude condition", func(t *testing.T) {
		var gotFilter *services.TagFilter
		svc := &mockTransactionService{
			monthlyBreakdownFn: func(_ uint, _, _ int, filter *services.TagFilter) (*services.MonthlyBreakdown, error) {
				gotFilter = filter
				return &services.MonthlyBreakdown{}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?year=2024&month=3&tag=trip&condition=exclude", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter == nil || gotFilter.Condition != services.TagConditionExclude {
			t.Fatalf("expected exclude condition, got %+v", gotFilter)
		}
	})

	t.Run("returns 400 on bad condition", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?year=2024&month=3&tag=trip&condition=sometimes", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing month", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?year=2024", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on month out of range", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?year=2024&month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("returns month entries", func(t *testing.T) {
		tagName := "trip"
		svc := &mockTransactionService{
			listMonthFn: func(_ uint, _, _ int) ([]models.Transaction, error) {
				return []models.Transaction{
					{
						Base:     models.Base{ID: 1},
						Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local),
						Amount:   decimal.RequireFromString("5"),
						Type:     models.TransactionTypeExpense,
						Category: models.Category{Base: models.Base{ID: 1}, Name: "Food"},
						Tag:      &models.Tag{Base: models.Base{ID: 1}, Name: tagName},
					},
				}, nil
			},
		}
		handler := NewTransactionHandler(svc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/list?year=2024&month=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		transactions := result["transactions"].([]interface{})
		if len(transactions) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(transactions))
		}
		first := transactions[0].(map[string]interface{})
		if first["tag"] != "trip" {
			t.Errorf("expected tag trip, got %v", first["tag"])
		}
	})

	t.Run("returns 400 on missing params", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions/list", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
