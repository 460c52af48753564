package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"client_portal/internal/app/service"
	"client_portal/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

func TestInvoiceListScopedToUser(t *testing.T) {
	repo := &fakeInvoiceRepo{
		listByUserFn: func(ctx context.Context, userID string) ([]model.Invoice, error) {
			if userID != "user-1" {
				t.Errorf("expected session user id, got %q", userID)
			}
			return []model.Invoice{{ID: 3, UserID: userID, Amount: "1499.00", Status: model.InvoiceStatusPending}}, nil
		},
	}

	h := NewInvoiceHandler(service.NewInvoiceService(repo))
	r := chi.NewRouter()
	r.Use(asUser("user-1", model.RoleClient))
	r.Route("/api/invoices", h.RegisterRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got []model.Invoice
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Amount != "1499.00" {
		t.Errorf("unexpected invoices %+v", got)
	}
}
