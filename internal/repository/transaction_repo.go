package repository

import (
	"context"
	"time"

	"github.com/serenica/retreat-backoffice/internal/models"
	"gorm.io/gorm"
)

// CategoryTotal is one row of the per-category expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *models.FinancialTransaction) error
	SumByType(ctx context.Context, txnType models.TransactionType, from, to time.Time) (float64, error)
	SumExpensesByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.FinancialTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) SumByType(ctx context.Context, txnType models.TransactionType, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.FinancialTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND date BETWEEN ? AND ?", txnType, from, to).
		Scan(&total).Error
	return total, err
}

func (r *transactionRepository) SumExpensesByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&models.FinancialTransaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("type = ? AND date BETWEEN ? AND ?", models.TransactionExpense, from, to).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}
