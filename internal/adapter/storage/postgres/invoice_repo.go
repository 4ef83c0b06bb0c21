package postgres

import (
	"context"
	"errors"
	"fmt"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InvoiceRepo implements ports.InvoiceRepository.
type InvoiceRepo struct {
	pool Pool
}

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo(pool Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

const invoiceColumns = `id, client_id, number, description, amount_cents, due_date, status, sent, sent_at, last_error, attempts, created_at`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	err := row.Scan(
		&inv.ID, &inv.ClientID, &inv.Number, &inv.Description,
		&inv.AmountCents, &inv.DueDate, &inv.Status,
		&inv.Sent, &inv.SentAt, &inv.LastError, &inv.Attempts,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID fetches an invoice by its UUID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

// ListByClient fetches all of a client's invoices, most recent due date first.
// This is the order the dispatch sweep and every invoice listing use.
func (r *InvoiceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY due_date DESC`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by client: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv := domain.Invoice{}
		err := rows.Scan(
			&inv.ID, &inv.ClientID, &inv.Number, &inv.Description,
			&inv.AmountCents, &inv.DueDate, &inv.Status,
			&inv.Sent, &inv.SentAt, &inv.LastError, &inv.Attempts,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, nil
}

// UpdateDispatch writes exactly the four dispatch-owned columns. Payment
// status updates run through a different statement, so the two never clobber
// each other.
func (r *InvoiceRepo) UpdateDispatch(ctx context.Context, id uuid.UUID, u domain.DispatchUpdate) error {
	query := `UPDATE invoices SET sent=$1, sent_at=$2, last_error=$3, attempts=$4 WHERE id=$5`

	tag, err := r.pool.Exec(ctx, query, u.Sent, u.SentAt, u.LastError, u.Attempts, id)
	if err != nil {
		return fmt.Errorf("update invoice dispatch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice dispatch: invoice %s not found", id)
	}
	return nil
}
