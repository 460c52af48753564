package service

import (
	"context"
	"fmt"
	"log"

	"client_portal/internal/common/validate"
	"client_portal/internal/domain/model"
	"client_portal/internal/domain/repository"
)

type ContactService struct {
	contactRepo repository.ContactRepository
	publisher   LeadPublisher
}

func NewContactService(contactRepo repository.ContactRepository, publisher LeadPublisher) *ContactService {
	return &ContactService{contactRepo: contactRepo, publisher: publisher}
}

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=10000"`
}

func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*model.ContactSubmission, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	submission, err := s.contactRepo.Create(ctx, &model.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("contact service: create: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, submission.ID); err != nil {
			// The lead is saved; notification delivery is best-effort.
			log.Printf("failed to enqueue lead %d: %v", submission.ID, err)
		}
	}
	return submission, nil
}

func (s *ContactService) ListAll(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.contactRepo.ListAll(ctx)
}

func (s *ContactService) MarkRead(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	return s.contactRepo.MarkRead(ctx, id)
}
