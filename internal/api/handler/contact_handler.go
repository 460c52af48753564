package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"client_portal/internal/app/service"
	"client_portal/internal/common"
	"client_portal/internal/domain/model"
)

type ContactIntake interface {
	Create(ctx context.Context, req service.CreateContactRequest) (*model.ContactSubmission, error)
}

// ContactHandler takes public leads; it is the only unauthenticated write
// surface, which is why the route sits behind the rate limiter.
type ContactHandler struct {
	contact ContactIntake
}

func NewContactHandler(contact ContactIntake) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	submission, err := h.contact.Create(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, submission)
}
