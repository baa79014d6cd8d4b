package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gofintrack/internal/adapter/http/dto"
	"github.com/iho/gofintrack/internal/analytics"
	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/usecase"
)

// TransactionService is the subset of the transaction use case the handler
// depends on.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	Browse(ctx context.Context, input usecase.BrowseInput) (analytics.BrowseResult, error)
	Categories(ctx context.Context, ownerID string) ([]string, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
	clock         usecase.Clock
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, clock usecase.Clock) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		clock:         clock,
	}
}

// Create handles POST /api/v1/transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(ownerID, h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	record, err := h.transactionUC.CreateTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// List handles GET /api/v1/transactions
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	result, err := h.transactionUC.Browse(r.Context(), dto.BrowseQuery(ownerID, r.URL.Query()))
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BrowseFromResult(result))
}

// Get handles GET /api/v1/transactions/{id}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		writeDomainError(w, "invalid transaction id", err)
		return
	}

	record, err := h.transactionUC.GetTransaction(r.Context(), ownerID, id)
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(record))
}

// Delete handles DELETE /api/v1/transactions/{id}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		writeDomainError(w, "invalid transaction id", err)
		return
	}

	if err := h.transactionUC.DeleteTransaction(r.Context(), ownerID, id); err != nil {
		writeDomainError(w, "failed to delete transaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Categories handles GET /api/v1/transactions/categories
func (h *TransactionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	categories, err := h.transactionUC.Categories(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, "failed to list categories", err)
		return
	}

	if categories == nil {
		categories = []string{}
	}

	writeJSON(w, http.StatusOK, dto.CategoriesResponse{Categories: categories})
}
