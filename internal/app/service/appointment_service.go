package service

import (
	"context"
	"fmt"
	"time"

	"client_portal/internal/common/validate"
	"client_portal/internal/domain/model"
	"client_portal/internal/domain/repository"
)

type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
}

func NewAppointmentService(appointmentRepo repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointmentRepo: appointmentRepo}
}

type CreateAppointmentRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	ServiceType string    `json:"service_type" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=2000"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type UpdateAppointmentRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	ServiceType string    `json:"service_type" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=2000"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Status      string    `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

func (s *AppointmentService) Create(ctx context.Context, userID string, req CreateAppointmentRequest) (*model.Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	appointment, err := s.appointmentRepo.Create(ctx, &model.Appointment{
		UserID:      userID,
		Title:       req.Title,
		ServiceType: req.ServiceType,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		Status:      model.AppointmentStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("appointment service: create: %w", err)
	}
	return appointment, nil
}

func (s *AppointmentService) ListForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	return s.appointmentRepo.ListByUser(ctx, userID)
}

func (s *AppointmentService) GetForUser(ctx context.Context, id int64, userID string) (*model.Appointment, error) {
	return s.appointmentRepo.FindForUser(ctx, id, userID)
}

func (s *AppointmentService) UpdateForUser(ctx context.Context, id int64, userID string, req UpdateAppointmentRequest) (*model.Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	return s.appointmentRepo.UpdateForUser(ctx, &model.Appointment{
		ID:          id,
		UserID:      userID,
		Title:       req.Title,
		ServiceType: req.ServiceType,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	})
}

func (s *AppointmentService) DeleteForUser(ctx context.Context, id int64, userID string) error {
	return s.appointmentRepo.DeleteForUser(ctx, id, userID)
}

func (s *AppointmentService) ListAll(ctx context.Context) ([]model.Appointment, error) {
	return s.appointmentRepo.ListAll(ctx)
}
