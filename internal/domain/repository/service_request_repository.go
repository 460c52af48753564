package repository

import (
	"context"
	"database/sql"
	"fmt"

	"client_portal/internal/domain/model"
	"client_portal/internal/platform/database"
)

type ServiceRequestRepository interface {
	Create(ctx context.Context, sr *model.ServiceRequest) (*model.ServiceRequest, error)
	ListByUser(ctx context.Context, userID string) ([]model.ServiceRequest, error)
	ListAll(ctx context.Context) ([]model.ServiceRequest, error)
}

type pgServiceRequestRepository struct {
	cluster *database.Cluster
}

func NewPgServiceRequestRepository(cluster *database.Cluster) ServiceRequestRepository {
	return &pgServiceRequestRepository{cluster: cluster}
}

const serviceRequestColumns = `id, user_id, title, service_type, priority, description, status, created_at, updated_at`

func collectServiceRequests(rows *sql.Rows) ([]model.ServiceRequest, error) {
	defer rows.Close()
	var requests []model.ServiceRequest
	for rows.Next() {
		var sr model.ServiceRequest
		if err := rows.Scan(
			&sr.ID, &sr.UserID, &sr.Title, &sr.ServiceType, &sr.Priority,
			&sr.Description, &sr.Status, &sr.CreatedAt, &sr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, sr)
	}
	return requests, rows.Err()
}

func (r *pgServiceRequestRepository) Create(ctx context.Context, sr *model.ServiceRequest) (*model.ServiceRequest, error) {
	query := `INSERT INTO service_requests (user_id, title, service_type, priority, description, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + serviceRequestColumns

	created := &model.ServiceRequest{}
	err := r.cluster.Writer().QueryRowContext(ctx, query,
		sr.UserID, sr.Title, sr.ServiceType, sr.Priority, sr.Description, sr.Status,
	).Scan(
		&created.ID, &created.UserID, &created.Title, &created.ServiceType, &created.Priority,
		&created.Description, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("pgServiceRequestRepository.Create: %w", err)
	}
	return created, nil
}

func (r *pgServiceRequestRepository) ListByUser(ctx context.Context, userID string) ([]model.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests
	          WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgServiceRequestRepository.ListByUser: %w", err)
	}
	requests, err := collectServiceRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("pgServiceRequestRepository.ListByUser: %w", err)
	}
	return requests, nil
}

func (r *pgServiceRequestRepository) ListAll(ctx context.Context) ([]model.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgServiceRequestRepository.ListAll: %w", err)
	}
	requests, err := collectServiceRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("pgServiceRequestRepository.ListAll: %w", err)
	}
	return requests, nil
}
