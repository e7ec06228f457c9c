package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/serenica/retreat-backoffice/internal/dto"
	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/service"
)

type FinanceHandler struct {
	svc service.FinanceService
}

func NewFinanceHandler(svc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

func (h *FinanceHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/finance")
	g.POST("/transactions", h.CreateTransaction)
	g.GET("/cashflow", h.CashFlow)
	g.GET("/expenses", h.ExpenseBreakdown)
}

func (h *FinanceHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	txnType := models.TransactionType(req.Type)
	if txnType != models.TransactionIncome && txnType != models.TransactionExpense {
		return echo.NewHTTPError(http.StatusBadRequest, "type must be INCOME or EXPENSE")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	if req.Category == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category is required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	txn := &models.FinancialTransaction{
		Type:        txnType,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	}
	if err := h.svc.RecordTransaction(c.Request().Context(), txn); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, txn)
}

func (h *FinanceHandler) CashFlow(c echo.Context) error {
	from, to, err := h.window(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.svc.CashFlow(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *FinanceHandler) ExpenseBreakdown(c echo.Context) error {
	from, to, err := h.window(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.svc.ExpenseBreakdown(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

// window reads the from/to query params, defaulting to the current month.
func (h *FinanceHandler) window(c echo.Context) (from, to time.Time, err error) {
	now := time.Now().UTC()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0).Add(-time.Second)

	if raw := c.QueryParam("from"); raw != "" {
		if from, err = parseDate(raw); err != nil {
			return from, to, err
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}
