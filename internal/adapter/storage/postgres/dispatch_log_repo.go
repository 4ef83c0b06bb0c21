package postgres

import (
	"context"
	"fmt"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
)

// DispatchLogRepo implements ports.DispatchLogRepository.
type DispatchLogRepo struct {
	pool Pool
}

// NewDispatchLogRepo creates a new DispatchLogRepo.
func NewDispatchLogRepo(pool Pool) *DispatchLogRepo {
	return &DispatchLogRepo{pool: pool}
}

// Create appends one attempt record. The trail is insert-only.
func (r *DispatchLogRepo) Create(ctx context.Context, log *domain.DispatchLog) error {
	query := `INSERT INTO dispatch_logs (id, invoice_id, attempt, success, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		log.ID, log.InvoiceID, log.Attempt, log.Success, log.Error, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dispatch log: %w", err)
	}
	return nil
}

// ListByInvoice fetches the attempt trail for one invoice, newest first.
func (r *DispatchLogRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.DispatchLog, error) {
	query := `SELECT id, invoice_id, attempt, success, error, created_at
		FROM dispatch_logs WHERE invoice_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list dispatch logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DispatchLog
	for rows.Next() {
		l := domain.DispatchLog{}
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Attempt, &l.Success, &l.Error, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dispatch log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispatch logs: %w", err)
	}
	return logs, nil
}
