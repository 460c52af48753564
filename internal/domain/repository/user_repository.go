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

type UserRepository interface {
	// Upsert syncs the provider-issued profile on login: insert on first
	// sight, overwrite all profile fields (never role or active) after.
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id, role string) (*model.User, error)
	UpdateStatus(ctx context.Context, id string, active bool) (*model.User, error)
}

type pgUserRepository struct {
	cluster *database.Cluster
}

func NewPgUserRepository(cluster *database.Cluster) UserRepository {
	return &pgUserRepository{cluster: cluster}
}

const userColumns = `id, email, first_name, last_name, profile_image_url, role, active, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.ProfileImageURL, &user.Role, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	query := `INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (id) DO UPDATE SET
	              email = EXCLUDED.email,
	              first_name = EXCLUDED.first_name,
	              last_name = EXCLUDED.last_name,
	              profile_image_url = EXCLUDED.profile_image_url,
	              updated_at = CURRENT_TIMESTAMP
	          RETURNING ` + userColumns

	row := r.cluster.Writer().QueryRowContext(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName,
		user.ProfileImageURL, user.Role, user.Active,
	)
	saved, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.Upsert: %w", err)
	}
	return saved, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.cluster.Reader().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.FirstName, &user.LastName,
			&user.ProfileImageURL, &user.Role, &user.Active,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.List rows: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) UpdateRole(ctx context.Context, id, role string) (*model.User, error) {
	query := `UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
	          RETURNING ` + userColumns
	user, err := scanUser(r.cluster.Writer().QueryRowContext(ctx, query, role, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateRole: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateStatus(ctx context.Context, id string, active bool) (*model.User, error) {
	query := `UPDATE users SET active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
	          RETURNING ` + userColumns
	user, err := scanUser(r.cluster.Writer().QueryRowContext(ctx, query, active, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateStatus: %w", err)
	}
	return user, nil
}
