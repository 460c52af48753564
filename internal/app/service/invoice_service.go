package service

import (
	"context"
	"fmt"
	"time"

	"client_portal/internal/common/validate"
	"client_portal/internal/domain/model"
	"client_portal/internal/domain/repository"
)

type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// CreateInvoiceRequest is the admin issuance payload. Amount travels as a
// decimal string straight into the NUMERIC column.
type CreateInvoiceRequest struct {
	UserID      string    `json:"user_id" validate:"required"`
	Amount      string    `json:"amount" validate:"required,numeric"`
	Description string    `json:"description" validate:"required,max=2000"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*model.Invoice, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.InvoiceStatusPending
	}

	invoice, err := s.invoiceRepo.Create(ctx, &model.Invoice{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("invoice service: create: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) ListForUser(ctx context.Context, userID string) ([]model.Invoice, error) {
	return s.invoiceRepo.ListByUser(ctx, userID)
}

func (s *InvoiceService) ListAll(ctx context.Context) ([]model.Invoice, error) {
	return s.invoiceRepo.ListAll(ctx)
}
