package domain

var incomeCategories = []string{"salary", "sold_items", "coupons", "gifts", "others"}

var expenseCategories = []string{
	"food", "travel", "shopping", "bills", "gifts",
	"rent", "education", "personal", "others",
}

// CategoriesFor returns the catalogue of categories accepted for a type.
// The returned slice is a copy.
func CategoriesFor(t TransactionType) []string {
	var src []string

	switch t {
	case TransactionTypeIncome:
		src = incomeCategories
	case TransactionTypeExpense:
		src = expenseCategories
	default:
		return nil
	}

	out := make([]string, len(src))
	copy(out, src)

	return out
}

// IsValidCategory reports whether category belongs to the catalogue for t.
func IsValidCategory(t TransactionType, category string) bool {
	for _, c := range CategoriesFor(t) {
		if c == category {
			return true
		}
	}

	return false
}
