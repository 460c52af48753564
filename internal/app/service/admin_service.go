package service

import (
	"context"

	"client_portal/internal/common/validate"
	"client_portal/internal/domain/model"
	"client_portal/internal/domain/repository"
)

// AdminService backs the /api/admin surface: user management plus the
// unfiltered cross-user listings and invoice issuance.
type AdminService struct {
	userRepo     repository.UserRepository
	appointments *AppointmentService
	requests     *ServiceRequestService
	invoices     *InvoiceService
	contact      *ContactService
}

func NewAdminService(
	userRepo repository.UserRepository,
	appointments *AppointmentService,
	requests *ServiceRequestService,
	invoices *InvoiceService,
	contact *ContactService,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		appointments: appointments,
		requests:     requests,
		invoices:     invoices,
		contact:      contact,
	}
}

type UpdateRoleRequest struct {
	// Anything outside the two-value enum is a 400 before any write.
	Role string `json:"role" validate:"required,oneof=client admin"`
}

type UpdateStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *AdminService) UpdateUserRole(ctx context.Context, id string, req UpdateRoleRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return s.userRepo.UpdateRole(ctx, id, req.Role)
}

func (s *AdminService) UpdateUserStatus(ctx context.Context, id string, req UpdateStatusRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return s.userRepo.UpdateStatus(ctx, id, *req.Active)
}

func (s *AdminService) ListAllAppointments(ctx context.Context) ([]model.Appointment, error) {
	return s.appointments.ListAll(ctx)
}

func (s *AdminService) ListAllServiceRequests(ctx context.Context) ([]model.ServiceRequest, error) {
	return s.requests.ListAll(ctx)
}

func (s *AdminService) ListAllInvoices(ctx context.Context) ([]model.Invoice, error) {
	return s.invoices.ListAll(ctx)
}

func (s *AdminService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*model.Invoice, error) {
	return s.invoices.Create(ctx, req)
}

func (s *AdminService) ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.contact.ListAll(ctx)
}

func (s *AdminService) MarkContactRead(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	return s.contact.MarkRead(ctx, id)
}
