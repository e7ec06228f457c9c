package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// FinancialTransaction is an independent ledger row summed by the reporting
// routes; it shares the database with bookings but has no relation to them.
type FinancialTransaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Category    string          `gorm:"not null;index" json:"category"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}
