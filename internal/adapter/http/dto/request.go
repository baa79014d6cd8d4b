package dto

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/analytics"
	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/usecase"
)

// DateLayout is the calendar-date form accepted for transaction dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents a request to record a transaction.
// Amount is a decimal string; Date is either YYYY-MM-DD or RFC 3339 and
// defaults to the current day.
type CreateTransactionRequest struct {
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Note          string `json:"note,omitempty"`
	Date          string `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input. Calendar dates are anchored at
// midnight in now's location.
func (r *CreateTransactionRequest) ToUseCaseInput(ownerID string, now time.Time) (usecase.CreateTransactionInput, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return usecase.CreateTransactionInput{}, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, r.Amount)
	}

	date, err := ParseDate(r.Date, now)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	return usecase.CreateTransactionInput{
		OwnerID:       ownerID,
		Type:          domain.TransactionType(strings.TrimSpace(r.Type)),
		Amount:        amount,
		Description:   r.Description,
		Category:      strings.TrimSpace(r.Category),
		PaymentMethod: domain.PaymentMethod(strings.TrimSpace(r.PaymentMethod)),
		Note:          r.Note,
		Date:          date,
	}, nil
}

// ParseDate parses a transaction date. An empty value means today.
func ParseDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}

	if t, err := time.ParseInLocation(DateLayout, value, now.Location()); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, value)
	}

	return t, nil
}

// BrowseQuery reads browse parameters from a query string. Missing
// parameters select everything.
func BrowseQuery(ownerID string, q url.Values) usecase.BrowseInput {
	return usecase.BrowseInput{
		OwnerID:  ownerID,
		Search:   q.Get("search"),
		Type:     q.Get("type"),
		Category: q.Get("category"),
		Sort:     analytics.SortOrder(q.Get("sort")),
	}
}
