package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether the type is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// PaymentMethod is the optional instrument used for a transaction.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

// DefaultPaymentMethod is preselected by entry forms.
const DefaultPaymentMethod = PaymentMethodUPI

// IsValid reports whether the method is known. Empty means unspecified and is valid.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case "", PaymentMethodCard, PaymentMethodCash, PaymentMethodUPI:
		return true
	default:
		return false
	}
}

// Transaction is a single income or expense event owned by one user.
// Amount is never negative; the sign is implied by Type.
type Transaction struct {
	Date          time.Time
	CreatedAt     time.Time
	ID            string
	OwnerID       string
	Type          TransactionType
	Description   string
	Category      string
	PaymentMethod PaymentMethod
	Note          string
	Amount        decimal.Decimal
}

// IsIncome reports whether the transaction adds to the balance.
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense reports whether the transaction subtracts from the balance.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// Signed returns the amount with the sign applied: positive for income,
// negative for expense.
func (t *Transaction) Signed() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}

	return t.Amount
}

// Validate checks the record against the creation rules.
func (t *Transaction) Validate() error {
	return ValidateTransaction(t)
}
