package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"client_portal/internal/common"
	"client_portal/internal/domain/model"
	"client_portal/internal/platform/database"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	// Find returns ErrNotFound for absent and expired sessions alike.
	Find(ctx context.Context, id string) (*model.Session, error)
	// Extend slides the expiry forward for rolling sessions.
	Extend(ctx context.Context, id string, expiresAt time.Time) error
	// Update rewrites the payload, used after an OIDC token refresh.
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type pgSessionRepository struct {
	cluster *database.Cluster
}

func NewPgSessionRepository(cluster *database.Cluster) SessionRepository {
	return &pgSessionRepository{cluster: cluster}
}

func (r *pgSessionRepository) Create(ctx context.Context, s *model.Session) error {
	query := `INSERT INTO sessions (id, payload, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.cluster.Writer().ExecContext(ctx, query, s.ID, s.Payload, s.ExpiresAt); err != nil {
		return fmt.Errorf("pgSessionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) Find(ctx context.Context, id string) (*model.Session, error) {
	// Session reads go to the primary: a replica lagging behind a login
	// would bounce the freshly issued cookie straight back to 401.
	query := `SELECT id, payload, expires_at, created_at FROM sessions
	          WHERE id = $1 AND expires_at > CURRENT_TIMESTAMP`
	s := &model.Session{}
	err := r.cluster.Writer().QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Payload, &s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSessionRepository.Find: %w", err)
	}
	return s, nil
}

func (r *pgSessionRepository) Extend(ctx context.Context, id string, expiresAt time.Time) error {
	query := `UPDATE sessions SET expires_at = $1 WHERE id = $2`
	if _, err := r.cluster.Writer().ExecContext(ctx, query, expiresAt, id); err != nil {
		return fmt.Errorf("pgSessionRepository.Extend: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) Update(ctx context.Context, s *model.Session) error {
	query := `UPDATE sessions SET payload = $1, expires_at = $2 WHERE id = $3`
	if _, err := r.cluster.Writer().ExecContext(ctx, query, s.Payload, s.ExpiresAt, s.ID); err != nil {
		return fmt.Errorf("pgSessionRepository.Update: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	if _, err := r.cluster.Writer().ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("pgSessionRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP`
	res, err := r.cluster.Writer().ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("pgSessionRepository.DeleteExpired: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgSessionRepository.DeleteExpired rows: %w", err)
	}
	return deleted, nil
}
