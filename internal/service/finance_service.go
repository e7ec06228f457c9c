package service

import (
	"context"
	"fmt"
	"time"

	"github.com/serenica/retreat-backoffice/internal/models"
	"github.com/serenica/retreat-backoffice/internal/repository"
)

// CashFlowSummary aggregates ledger rows over a date window.
type CashFlowSummary struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Income   float64   `json:"income"`
	Expenses float64   `json:"expenses"`
	Net      float64   `json:"net"`
}

type FinanceService interface {
	RecordTransaction(ctx context.Context, txn *models.FinancialTransaction) error
	CashFlow(ctx context.Context, from, to time.Time) (*CashFlowSummary, error)
	ExpenseBreakdown(ctx context.Context, from, to time.Time) ([]repository.CategoryTotal, error)
}

type financeService struct {
	repo repository.TransactionRepository
}

func NewFinanceService(repo repository.TransactionRepository) FinanceService {
	return &financeService{repo: repo}
}

func (s *financeService) RecordTransaction(ctx context.Context, txn *models.FinancialTransaction) error {
	if err := s.repo.Create(ctx, txn); err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

func (s *financeService) CashFlow(ctx context.Context, from, to time.Time) (*CashFlowSummary, error) {
	income, err := s.repo.SumByType(ctx, models.TransactionIncome, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.SumByType(ctx, models.TransactionExpense, from, to)
	if err != nil {
		return nil, err
	}

	return &CashFlowSummary{
		From:     from,
		To:       to,
		Income:   income,
		Expenses: expenses,
		Net:      income - expenses,
	}, nil
}

func (s *financeService) ExpenseBreakdown(ctx context.Context, from, to time.Time) ([]repository.CategoryTotal, error) {
	return s.repo.SumExpensesByCategory(ctx, from, to)
}
