package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionSigned(t *testing.T) {
	t.Parallel()

	income := &Transaction{Type: TransactionTypeIncome, Amount: decimal.NewFromInt(100)}
	if !income.Signed().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected +100, got %s", income.Signed())
	}

	expense := &Transaction{Type: TransactionTypeExpense, Amount: decimal.NewFromInt(40)}
	if !expense.Signed().Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("expected -40, got %s", expense.Signed())
	}

	if !expense.Amount.Equal(decimal.NewFromInt(40)) {
		t.Fatal("Signed must not mutate the stored amount")
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	t.Parallel()

	for _, tt := range []TransactionType{TransactionTypeIncome, TransactionTypeExpense} {
		if !tt.IsValid() {
			t.Fatalf("expected %q to be valid", tt)
		}
	}

	if TransactionType("Income").IsValid() {
		t.Fatal("type comparison must be exact")
	}
}

func TestCategoriesFor(t *testing.T) {
	t.Parallel()

	income := CategoriesFor(TransactionTypeIncome)
	if len(income) != 5 || income[0] != "salary" {
		t.Fatalf("unexpected income catalogue: %v", income)
	}

	expense := CategoriesFor(TransactionTypeExpense)
	if len(expense) != 9 || expense[0] != "food" {
		t.Fatalf("unexpected expense catalogue: %v", expense)
	}

	// callers get a copy
	income[0] = "changed"
	if CategoriesFor(TransactionTypeIncome)[0] != "salary" {
		t.Fatal("catalogue must not be mutable through the returned slice")
	}

	if CategoriesFor("other") != nil {
		t.Fatal("expected nil for unknown type")
	}
}

func TestIsValidCategory(t *testing.T) {
	t.Parallel()

	if !IsValidCategory(TransactionTypeIncome, "gifts") || !IsValidCategory(TransactionTypeExpense, "gifts") {
		t.Fatal("gifts belongs to both catalogues")
	}

	if IsValidCategory(TransactionTypeIncome, "rent") {
		t.Fatal("rent is not an income category")
	}
}
