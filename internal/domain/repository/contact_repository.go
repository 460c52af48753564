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

type ContactRepository interface {
	Create(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error)
	FindByID(ctx context.Context, id int64) (*model.ContactSubmission, error)
	ListAll(ctx context.Context) ([]model.ContactSubmission, error)
	// MarkRead is idempotent: marking an already-read submission succeeds.
	MarkRead(ctx context.Context, id int64) (*model.ContactSubmission, error)
}

type pgContactRepository struct {
	cluster *database.Cluster
}

func NewPgContactRepository(cluster *database.Cluster) ContactRepository {
	return &pgContactRepository{cluster: cluster}
}

const contactColumns = `id, name, email, subject, message, is_read, created_at`

func scanContact(row *sql.Row) (*model.ContactSubmission, error) {
	c := &model.ContactSubmission{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *pgContactRepository) Create(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error) {
	query := `INSERT INTO contact_submissions (name, email, subject, message)
	          VALUES ($1, $2, $3, $4)
	          RETURNING ` + contactColumns

	created, err := scanContact(r.cluster.Writer().QueryRowContext(ctx, query,
		c.Name, c.Email, c.Subject, c.Message,
	))
	if err != nil {
		return nil, fmt.Errorf("pgContactRepository.Create: %w", err)
	}
	return created, nil
}

func (r *pgContactRepository) FindByID(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = $1`
	c, err := scanContact(r.cluster.Reader().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContactRepository.FindByID: %w", err)
	}
	return c, nil
}

func (r *pgContactRepository) ListAll(ctx context.Context) ([]model.ContactSubmission, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_submissions ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgContactRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var submissions []model.ContactSubmission
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgContactRepository.ListAll scan: %w", err)
		}
		submissions = append(submissions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContactRepository.ListAll rows: %w", err)
	}
	return submissions, nil
}

func (r *pgContactRepository) MarkRead(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	query := `UPDATE contact_submissions SET is_read = TRUE WHERE id = $1
	          RETURNING ` + contactColumns
	c, err := scanContact(r.cluster.Writer().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContactRepository.MarkRead: %w", err)
	}
	return c, nil
}
