package dto

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/analytics"
	"github.com/iho/gofintrack/internal/domain"
)

func TestCreateTransactionRequest_ToUseCaseInput(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, time.March, 15, 22, 30, 0, 0, kolkata)

	tests := []struct {
		name     string
		request  CreateTransactionRequest
		wantDate time.Time
		wantErr  error
	}{
		{
			name:     "calendar date in local zone",
			request:  CreateTransactionRequest{Type: "expense", Amount: "12.50", Category: "food", Date: "2024-03-01"},
			wantDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, kolkata),
		},
		{
			name:     "rfc3339 timestamp",
			request:  CreateTransactionRequest{Type: "income", Amount: "100", Category: "salary", Date: "2024-03-01T09:15:00Z"},
			wantDate: time.Date(2024, time.March, 1, 9, 15, 0, 0, time.UTC),
		},
		{
			name:     "missing date means today",
			request:  CreateTransactionRequest{Type: "income", Amount: "1", Category: "salary"},
			wantDate: time.Date(2024, time.March, 15, 0, 0, 0, 0, kolkata),
		},
		{
			name:    "malformed date",
			request: CreateTransactionRequest{Type: "expense", Amount: "1", Date: "15/03/2024"},
			wantErr: domain.ErrInvalidDate,
		},
		{
			name:    "malformed amount",
			request: CreateTransactionRequest{Type: "expense", Amount: "twelve"},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput("owner-1", now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.OwnerID != "owner-1" {
				t.Fatalf("expected owner to be set, got %q", got.OwnerID)
			}
			if !got.Date.Equal(tt.wantDate) {
				t.Fatalf("expected date %v, got %v", tt.wantDate, got.Date)
			}
			if !got.Amount.Equal(decimal.RequireFromString(tt.request.Amount)) {
				t.Fatalf("expected amount %s, got %s", tt.request.Amount, got.Amount)
			}
			if string(got.Type) != tt.request.Type {
				t.Fatalf("expected type %s, got %s", tt.request.Type, got.Type)
			}
		})
	}
}

func TestBrowseQuery(t *testing.T) {
	q := url.Values{}
	q.Set("search", "coffee")
	q.Set("type", "expense")
	q.Set("category", "food")
	q.Set("sort", "highest")

	got := BrowseQuery("owner-1", q)

	if got.OwnerID != "owner-1" || got.Search != "coffee" || got.Type != "expense" || got.Category != "food" {
		t.Fatalf("unexpected browse input %+v", got)
	}
	if got.Sort != analytics.SortOrder("highest") {
		t.Fatalf("expected sort highest, got %s", got.Sort)
	}

	empty := BrowseQuery("owner-1", url.Values{})
	if empty.Search != "" || empty.Sort != "" {
		t.Fatalf("expected empty browse input, got %+v", empty)
	}
}
