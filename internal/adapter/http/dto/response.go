package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/analytics"
	"github.com/iho/gofintrack/internal/domain"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Note          string          `json:"note,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Description:   t.Description,
		Category:      t.Category,
		PaymentMethod: string(t.PaymentMethod),
		Note:          t.Note,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// SectionResponse is one recency group of a browse result.
type SectionResponse struct {
	Title        string                 `json:"title"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// BrowseResponse represents a filtered, sorted and grouped transaction list.
type BrowseResponse struct {
	Count        int                    `json:"count"`
	Transactions []*TransactionResponse `json:"transactions"`
	Sections     []SectionResponse      `json:"sections"`
}

// BrowseFromResult converts a browse result to response.
func BrowseFromResult(result analytics.BrowseResult) *BrowseResponse {
	sections := result.Groups.Sections()
	resp := &BrowseResponse{
		Count:        len(result.Transactions),
		Transactions: TransactionsFromDomain(result.Transactions),
		Sections:     make([]SectionResponse, len(sections)),
	}

	for i, s := range sections {
		resp.Sections[i] = SectionResponse{
			Title:        s.Title,
			Transactions: TransactionsFromDomain(s.Transactions),
		}
	}

	return resp
}

// CategoriesResponse lists category names.
type CategoriesResponse struct {
	Type       string   `json:"type,omitempty"`
	Categories []string `json:"categories"`
}

// CatalogueResponse lists the selectable categories of both types.
type CatalogueResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// InsightsResponse wraps insights that may be absent for an empty snapshot.
type InsightsResponse struct {
	Insights *analytics.InsightSummary `json:"insights"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
