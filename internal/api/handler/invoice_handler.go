package handler

import (
	"context"
	"net/http"

	"client_portal/internal/common"
	"client_portal/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type InvoiceReader interface {
	ListForUser(ctx context.Context, userID string) ([]model.Invoice, error)
}

type InvoiceHandler struct {
	invoices InvoiceReader
}

func NewInvoiceHandler(invoices InvoiceReader) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

func (h *InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list) // GET /api/invoices
}

func (h *InvoiceHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	invoices, err := h.invoices.ListForUser(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, invoices)
}
