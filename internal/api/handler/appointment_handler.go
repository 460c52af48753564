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

// AppointmentManager is the slice of the appointment service the handler
// needs. Every operation here is owner-scoped: the user id always comes
// from the session, never from the request body.
type AppointmentManager interface {
	Create(ctx context.Context, userID string, req service.CreateAppointmentRequest) (*model.Appointment, error)
	ListForUser(ctx context.Context, userID string) ([]model.Appointment, error)
	GetForUser(ctx context.Context, id int64, userID string) (*model.Appointment, error)
	UpdateForUser(ctx context.Context, id int64, userID string, req service.UpdateAppointmentRequest) (*model.Appointment, error)
	DeleteForUser(ctx context.Context, id int64, userID string) error
}

type AppointmentHandler struct {
	appointments AppointmentManager
}

func NewAppointmentHandler(appointments AppointmentManager) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

func (h *AppointmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)                    // GET /api/appointments
	r.Post("/", h.create)                 // POST /api/appointments
	r.Get("/{appointmentID}", h.get)      // GET /api/appointments/42
	r.Put("/{appointmentID}", h.update)   // PUT /api/appointments/42
	r.Delete("/{appointmentID}", h.del)   // DELETE /api/appointments/42
}

func (h *AppointmentHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	appointments, err := h.appointments.ListForUser(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req service.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointments.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, appointment)
}

func (h *AppointmentHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	id, ok := pathID(r, "appointmentID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	appointment, err := h.appointments.GetForUser(r.Context(), id, userID)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	id, ok := pathID(r, "appointmentID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	var req service.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointments.UpdateForUser(r.Context(), id, userID, req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) del(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	id, ok := pathID(r, "appointmentID")
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	if err := h.appointments.DeleteForUser(r.Context(), id, userID); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
