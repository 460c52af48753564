package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"client_portal/internal/common"
	"client_portal/internal/domain/model"
	"client_portal/internal/platform/database"

	"github.com/jackc/pgx/v5/pgconn"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]model.Invoice, error)
	ListAll(ctx context.Context) ([]model.Invoice, error)
}

type pgInvoiceRepository struct {
	cluster *database.Cluster
}

func NewPgInvoiceRepository(cluster *database.Cluster) InvoiceRepository {
	return &pgInvoiceRepository{cluster: cluster}
}

const invoiceColumns = `id, user_id, amount, description, status, due_date, created_at, updated_at`

func collectInvoices(rows *sql.Rows) ([]model.Invoice, error) {
	defer rows.Close()
	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.Amount, &inv.Description,
			&inv.Status, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *pgInvoiceRepository) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	query := `INSERT INTO invoices (user_id, amount, description, status, due_date)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING ` + invoiceColumns

	created := &model.Invoice{}
	err := r.cluster.Writer().QueryRowContext(ctx, query,
		inv.UserID, inv.Amount, inv.Description, inv.Status, inv.DueDate,
	).Scan(
		&created.ID, &created.UserID, &created.Amount, &created.Description,
		&created.Status, &created.DueDate, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // no such user
			return nil, fmt.Errorf("invoice references an unknown user: %w", common.ErrBadRequest)
		}
		return nil, fmt.Errorf("pgInvoiceRepository.Create: %w", err)
	}
	return created, nil
}

func (r *pgInvoiceRepository) ListByUser(ctx context.Context, userID string) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
	          WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgInvoiceRepository.ListByUser: %w", err)
	}
	invoices, err := collectInvoices(rows)
	if err != nil {
		return nil, fmt.Errorf("pgInvoiceRepository.ListByUser: %w", err)
	}
	return invoices, nil
}

func (r *pgInvoiceRepository) ListAll(ctx context.Context) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`
	rows, err := r.cluster.Reader().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgInvoiceRepository.ListAll: %w", err)
	}
	invoices, err := collectInvoices(rows)
	if err != nil {
		return nil, fmt.Errorf("pgInvoiceRepository.ListAll: %w", err)
	}
	return invoices, nil
}
