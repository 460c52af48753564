package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"client_portal/internal/app/service"
	"client_portal/internal/common"
	"client_portal/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type fakeUserRepo struct {
	upsertFn       func(ctx context.Context, user *model.User) (*model.User, error)
	findByIDFn     func(ctx context.Context, id string) (*model.User, error)
	listFn         func(ctx context.Context) ([]model.User, error)
	updateRoleFn   func(ctx context.Context, id, role string) (*model.User, error)
	updateStatusFn func(ctx context.Context, id string, active bool) (*model.User, error)
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	return f.upsertFn(ctx, user)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	return f.listFn(ctx)
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id, role string) (*model.User, error) {
	return f.updateRoleFn(ctx, id, role)
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id string, active bool) (*model.User, error) {
	return f.updateStatusFn(ctx, id, active)
}

type fakeInvoiceRepo struct {
	createFn     func(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	listByUserFn func(ctx context.Context, userID string) ([]model.Invoice, error)
	listAllFn    func(ctx context.Context) ([]model.Invoice, error)
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	return f.createFn(ctx, inv)
}

func (f *fakeInvoiceRepo) ListByUser(ctx context.Context, userID string) ([]model.Invoice, error) {
	return f.listByUserFn(ctx, userID)
}

func (f *fakeInvoiceRepo) ListAll(ctx context.Context) ([]model.Invoice, error) {
	return f.listAllFn(ctx)
}

func adminRouter(userRepo *fakeUserRepo, invoiceRepo *fakeInvoiceRepo, contactRepo *fakeContactRepo) http.Handler {
	admin := service.NewAdminService(
		userRepo,
		service.NewAppointmentService(&fakeAppointmentRepo{}),
		service.NewServiceRequestService(&fakeServiceRequestRepo{}),
		service.NewInvoiceService(invoiceRepo),
		service.NewContactService(contactRepo, nil),
	)
	h := NewAdminHandler(admin, admin)
	r := chi.NewRouter()
	r.Use(asUser("admin-1", model.RoleAdmin))
	r.Route("/api/admin", h.RegisterRoutes)
	return r
}

func TestAdminListUsers(t *testing.T) {
	userRepo := &fakeUserRepo{listFn: func(ctx context.Context) ([]model.User, error) {
		return []model.User{
			{ID: "user-2", Email: "b@example.com", Role: model.RoleClient, Active: true},
			{ID: "user-1", Email: "a@example.com", Role: model.RoleAdmin, Active: true},
		}, nil
	}}

	rec := httptest.NewRecorder()
	adminRouter(userRepo, &fakeInvoiceRepo{}, &fakeContactRepo{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got []model.User
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 users, got %d", len(got))
	}
}

func TestAdminUpdateRole(t *testing.T) {
	userRepo := &fakeUserRepo{updateRoleFn: func(ctx context.Context, id, role string) (*model.User, error) {
		if id != "user-2" || role != model.RoleAdmin {
			t.Errorf("unexpected update args id=%q role=%q", id, role)
		}
		return &model.User{ID: id, Role: role, Active: true}, nil
	}}

	body := []byte(`{"role": "admin"}`)
	rec := httptest.NewRecorder()
	adminRouter(userRepo, &fakeInvoiceRepo{}, &fakeContactRepo{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/users/user-2/role", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got model.User
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("expected role admin, got %q", got.Role)
	}
}

func TestAdminUpdateRoleRejectsUnknownRole(t *testing.T) {
	userRepo := &fakeUserRepo{updateRoleFn: func(ctx context.Context, id, role string) (*model.User, error) {
		t.Fatal("repository should not be called for an unknown role")
		return nil, nil
	}}

	body := []byte(`{"role": "superuser"}`)
	rec := httptest.NewRecorder()
	adminRouter(userRepo, &fakeInvoiceRepo{}, &fakeContactRepo{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/users/user-2/role", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var resp common.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp.Fields["role"]; !ok {
		t.Errorf("expected a field error for role, got %v", resp.Fields)
	}
}

func TestAdminUpdateStatusRequiresActiveField(t *testing.T) {
	userRepo := &fakeUserRepo{updateStatusFn: func(ctx context.Context, id string, active bool) (*model.User, error) {
		t.Fatal("repository should not be called without an active flag")
		return nil, nil
	}}

	body := []byte(`{}`)
	rec := httptest.NewRecorder()
	adminRouter(userRepo, &fakeInvoiceRepo{}, &fakeContactRepo{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/users/user-2/status", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestAdminCreateInvoice(t *testing.T) {
	invoiceRepo := &fakeInvoiceRepo{createFn: func(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
		if inv.Status != model.InvoiceStatusPending {
			t.Errorf("expected omitted status to default to pending, got %q", inv.Status)
		}
		created := *inv
		created.ID = 3
		return &created, nil
	}}

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":     "user-2",
		"amount":      "1499.00",
		"description": "quarterly managed services",
		"due_date":    time.Now().Add(30 * 24 * time.Hour),
	})
	rec := httptest.NewRecorder()
	adminRouter(&fakeUserRepo{}, invoiceRepo, &fakeContactRepo{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/invoices", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got model.Invoice
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 3 || got.Amount != "1499.00" {
		t.Errorf("unexpected invoice %+v", got)
	}
}

func TestAdminCreateInvoiceRejectsBadAmount(t *testing.T) {
	invoiceRepo := &fakeInvoiceRepo{createFn: func(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
		t.Fatal("repository should not be called for a non-numeric amount")
		return nil, nil
	}}

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":     "user-2",
		"amount":      "a lot",
		"description": "quarterly managed services",
		"due_date":    time.Now().Add(30 * 24 * time.Hour),
	})
	rec := httptest.NewRecorder()
	adminRouter(&fakeUserRepo{}, invoiceRepo, &fakeContactRepo{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/invoices", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestAdminMarkContactReadIsIdempotent(t *testing.T) {
	calls := 0
	contactRepo := &fakeContactRepo{markReadFn: func(ctx context.Context, id int64) (*model.ContactSubmission, error) {
		calls++
		return &model.ContactSubmission{ID: id, IsRead: true}, nil
	}}
	router := adminRouter(&fakeUserRepo{}, &fakeInvoiceRepo{}, contactRepo)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/contact-submissions/5/read", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected status 200, got %d", i+1, rec.Code)
		}
		var got model.ContactSubmission
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !got.IsRead {
			t.Error("expected submission to read as read")
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 repository calls, got %d", calls)
	}
}

func TestAdminMarkContactReadMissing(t *testing.T) {
	contactRepo := &fakeContactRepo{markReadFn: func(ctx context.Context, id int64) (*model.ContactSubmission, error) {
		return nil, common.ErrNotFound
	}}

	rec := httptest.NewRecorder()
	adminRouter(&fakeUserRepo{}, &fakeInvoiceRepo{}, contactRepo).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/contact-submissions/999/read", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
