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

type ServiceRequestManager interface {
	Create(ctx context.Context, userID string, req service.CreateServiceRequestRequest) (*model.ServiceRequest, error)
	ListForUser(ctx context.Context, userID string) ([]model.ServiceRequest, error)
}

type ServiceRequestHandler struct {
	requests ServiceRequestManager
}

func NewServiceRequestHandler(requests ServiceRequestManager) *ServiceRequestHandler {
	return &ServiceRequestHandler{requests: requests}
}

func (h *ServiceRequestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)    // GET /api/service-requests
	r.Post("/", h.create) // POST /api/service-requests
}

func (h *ServiceRequestHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	requests, err := h.requests.ListForUser(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *ServiceRequestHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req service.CreateServiceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.requests.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, request)
}
