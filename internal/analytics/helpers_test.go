package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/domain"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func expense(amount int64, category string, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		Type:        domain.TransactionTypeExpense,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: category + " purchase",
		Date:        date,
	}
}

func income(amount int64, category string, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		Type:        domain.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: category + " payment",
		Date:        date,
	}
}

// scenarioSnapshot is the three-record snapshot used across the package tests.
func scenarioSnapshot() []*domain.Transaction {
	return []*domain.Transaction{
		expense(1000, "food", at(2024, time.March, 1, 10)),
		expense(500, "food", at(2024, time.March, 2, 15)),
		income(2000, "salary", at(2024, time.March, 1, 9)),
	}
}
