package handler

import (
	"net/http"

	"github.com/iho/gofintrack/internal/adapter/http/dto"
	"github.com/iho/gofintrack/internal/domain"
)

// CategoryHandler serves the fixed category catalogue.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List handles GET /api/v1/categories. Without a type both catalogues are
// returned.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		writeJSON(w, http.StatusOK, dto.CatalogueResponse{
			Income:  domain.CategoriesFor(domain.TransactionTypeIncome),
			Expense: domain.CategoriesFor(domain.TransactionTypeExpense),
		})
		return
	}

	t := domain.TransactionType(raw)
	if !t.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid type", domain.ErrInvalidTransactionType.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesResponse{
		Type:       raw,
		Categories: domain.CategoriesFor(t),
	})
}
