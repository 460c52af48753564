package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"client_portal/internal/common"
	"client_portal/internal/domain/model"
	"client_portal/internal/platform/database"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]model.Appointment, error)
	// FindForUser, UpdateForUser and DeleteForUser filter by (id, user_id):
	// a row that exists but belongs to someone else reads as ErrNotFound.
	FindForUser(ctx context.Context, id int64, userID string) (*model.Appointment, error)
	UpdateForUser(ctx context.Context, a *model.Appointment) (*model.Appointment, error)
	DeleteForUser(ctx context.Context, id int64, userID string) error
	ListAll(ctx context.Context) ([]model.Appointment, error)
}

type pgAppointmentRepository struct {
	cluster *database.Cluster
}

func NewPgAppointmentRepository(cluster *database.Cluster) AppointmentRepository {
	return &pgAppointmentRepository{cluster: cluster}
}

const appointmentColumns = `id, user_id, title, service_type, description, scheduled_at, status, created_at, updated_at`

func scanAppointment(row *sql.Row) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.Title, &a.ServiceType, &a.Description,
		&a.ScheduledAt, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func collectAppointments(rows *sql.Rows) ([]model.Appointment, error) {
	defer rows.Close()
	var appointments []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Title, &a.ServiceType, &a.Description,
			&a.ScheduledAt, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *pgAppointmentRepository) Create(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	query := `INSERT INTO appointments (user_id, title, service_type, description, scheduled_at, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + appointmentColumns

	row := r.cluster.Writer().QueryRowContext(ctx, query,
		a.UserID, a.Title, a.ServiceType, a.Description, a.ScheduledAt, a.Status,
	)
	created, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("pgAppointmentRepository.Create: %w", err)
	}
	return created, nil
}

func (r *pgAppointmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
	          WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgAppointmentRepository.ListByUser: %w", err)
	}
	appointments, err := collectAppointments(rows)
	if err != nil {
		return nil, fmt.Errorf("pgAppointmentRepository.ListByUser: %w", err)
	}
	return appointments, nil
}

func (r *pgAppointmentRepository) FindForUser(ctx context.Context, id int64, userID string) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
	          WHERE id = $1 AND user_id = $2`
	a, err := scanAppointment(r.cluster.Reader().QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAppointmentRepository.FindForUser: %w", err)
	}
	return a, nil
}

func (r *pgAppointmentRepository) UpdateForUser(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	query := `UPDATE appointments SET
	              title = $1, service_type = $2, description = $3,
	              scheduled_at = $4, status = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6 AND user_id = $7
	          RETURNING ` + appointmentColumns

	row := r.cluster.Writer().QueryRowContext(ctx, query,
		a.Title, a.ServiceType, a.Description, a.ScheduledAt, a.Status, a.ID, a.UserID,
	)
	updated, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAppointmentRepository.UpdateForUser: %w", err)
	}
	return updated, nil
}

func (r *pgAppointmentRepository) DeleteForUser(ctx context.Context, id int64, userID string) error {
	query := `DELETE FROM appointments WHERE id = $1 AND user_id = $2`
	res, err := r.cluster.Writer().ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("pgAppointmentRepository.DeleteForUser: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgAppointmentRepository.DeleteForUser rows: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAppointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgAppointmentRepository.ListAll: %w", err)
	}
	appointments, err := collectAppointments(rows)
	if err != nil {
		return nil, fmt.Errorf("pgAppointmentRepository.ListAll: %w", err)
	}
	return appointments, nil
}
