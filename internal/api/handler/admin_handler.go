package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"client_portal/internal/app/service"
	"client_portal/internal/common"
	"client_portal/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type AdminUserManager interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id string, req service.UpdateRoleRequest) (*model.User, error)
	UpdateUserStatus(ctx context.Context, id string, req service.UpdateStatusRequest) (*model.User, error)
}

type AdminListings interface {
	ListAllAppointments(ctx context.Context) ([]model.Appointment, error)
	ListAllServiceRequests(ctx context.Context) ([]model.ServiceRequest, error)
	ListAllInvoices(ctx context.Context) ([]model.Invoice, error)
	CreateInvoice(ctx context.Context, req service.CreateInvoiceRequest) (*model.Invoice, error)
	ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error)
	MarkContactRead(ctx context.Context, id int64) (*model.ContactSubmission, error)
}

// AdminHandler serves the role-gated management surface. The router mounts
// it behind Authenticator and AdminOnly, so every request here already
// carries an admin identity.
type AdminHandler struct {
	users    AdminUserManager
	listings AdminListings
}

func NewAdminHandler(users AdminUserManager, listings AdminListings) *AdminHandler {
	return &AdminHandler{users: users, listings: listings}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)                               // GET /api/admin/users
	r.Put("/users/{userID}/role", h.updateUserRole)            // PUT /api/admin/users/u1/role
	r.Put("/users/{userID}/status", h.updateUserStatus)        // PUT /api/admin/users/u1/status
	r.Get("/appointments", h.listAppointments)                 // GET /api/admin/appointments
	r.Get("/service-requests", h.listServiceRequests)          // GET /api/admin/service-requests
	r.Get("/invoices", h.listInvoices)                         // GET /api/admin/invoices
	r.Post("/invoices", h.createInvoice)                       // POST /api/admin/invoices
	r.Get("/contact-submissions", h.listContactSubmissions)    // GET /api/admin/contact-submissions
	r.Put("/contact-submissions/{submissionID}/read", h.markContactRead)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.UpdateUserRole(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) updateUserStatus(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.UpdateUserStatus(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) listAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.listings.ListAllAppointments(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, appointments)
}

func (h *AdminHandler) listServiceRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.listings.ListAllServiceRequests(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *AdminHandler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.listings.ListAllInvoices(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, invoices)
}

func (h *AdminHandler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req service.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invoice, err := h.listings.CreateInvoice(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, invoice)
}

func (h *AdminHandler) listContactSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.listings.ListContactSubmissions(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *AdminHandler) markContactRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "submissionID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	submission, err := h.listings.MarkContactRead(r.Context(), id)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}
