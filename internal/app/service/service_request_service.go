package service

import (
	"context"
	"fmt"

	"client_portal/internal/common/validate"
	"client_portal/internal/domain/model"
	"client_portal/internal/domain/repository"
)

type ServiceRequestService struct {
	requestRepo repository.ServiceRequestRepository
}

func NewServiceRequestService(requestRepo repository.ServiceRequestRepository) *ServiceRequestService {
	return &ServiceRequestService{requestRepo: requestRepo}
}

type CreateServiceRequestRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	ServiceType string `json:"service_type" validate:"required,max=100"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high urgent"`
	Description string `json:"description" validate:"required,max=5000"`
}

func (s *ServiceRequestService) Create(ctx context.Context, userID string, req CreateServiceRequestRequest) (*model.ServiceRequest, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.Create(ctx, &model.ServiceRequest{
		UserID:      userID,
		Title:       req.Title,
		ServiceType: req.ServiceType,
		Priority:    req.Priority,
		Description: req.Description,
		Status:      model.RequestStatusOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("service request service: create: %w", err)
	}
	return request, nil
}

func (s *ServiceRequestService) ListForUser(ctx context.Context, userID string) ([]model.ServiceRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

func (s *ServiceRequestService) ListAll(ctx context.Context) ([]model.ServiceRequest, error) {
	return s.requestRepo.ListAll(ctx)
}
