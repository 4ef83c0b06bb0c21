package postgres

import (
	"context"
	"testing"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		Number:      "0001",
		Description: "Parcela 12/48",
		AmountCents: 185000,
		DueDate:     time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		Status:      domain.InvoiceStatusPending,
		Attempts:    0,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func strPtr(s string) *string { return &s }

func invoiceColumnNames() []string {
	return []string{"id", "client_id", "number", "description", "amount_cents", "due_date", "status", "sent", "sent_at", "last_error", "attempts", "created_at"}
}

func invoiceRow(inv *domain.Invoice) *pgxmock.Rows {
	return pgxmock.NewRows(invoiceColumnNames()).AddRow(
		inv.ID, inv.ClientID, inv.Number, inv.Description,
		inv.AmountCents, inv.DueDate, inv.Status,
		inv.Sent, inv.SentAt, inv.LastError, inv.Attempts,
		inv.CreatedAt,
	)
}

func TestInvoiceRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	inv := newTestInvoice()

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE id").
		WithArgs(inv.ID).
		WillReturnRows(invoiceRow(inv))

	result, err := repo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, inv.ID, result.ID)
	assert.Equal(t, inv.Number, result.Number)
	assert.Equal(t, 0, result.Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(invoiceColumnNames()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_ListByClient_OrderedByDueDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	clientID := uuid.New()
	a := newTestInvoice()
	a.ClientID = clientID
	b := newTestInvoice()
	b.ClientID = clientID
	b.Sent = true
	b.Attempts = 1

	mock.ExpectQuery("SELECT .+ FROM invoices WHERE client_id = .+ ORDER BY due_date DESC").
		WithArgs(clientID).
		WillReturnRows(invoiceRow(a).AddRow(
			b.ID, b.ClientID, b.Number, b.Description,
			b.AmountCents, b.DueDate, b.Status,
			b.Sent, b.SentAt, b.LastError, b.Attempts,
			b.CreatedAt,
		))

	result, err := repo.ListByClient(context.Background(), clientID)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, a.ID, result[0].ID)
	assert.True(t, result[1].Sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The dispatch update must touch exactly sent, sent_at, last_error and
// attempts. Payment status lives outside the statement entirely.
func TestInvoiceRepo_UpdateDispatch_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	id := uuid.New()
	sentAt := time.Now().UTC()

	mock.ExpectExec(`UPDATE invoices SET sent=\$1, sent_at=\$2, last_error=\$3, attempts=\$4 WHERE id=\$5`).
		WithArgs(true, &sentAt, (*string)(nil), 3, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateDispatch(context.Background(), id, domain.DispatchUpdate{
		Sent:     true,
		SentAt:   &sentAt,
		Attempts: 3,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_UpdateDispatch_Failure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)
	id := uuid.New()

	mock.ExpectExec(`UPDATE invoices SET sent=\$1, sent_at=\$2, last_error=\$3, attempts=\$4 WHERE id=\$5`).
		WithArgs(false, (*time.Time)(nil), strPtr("connection timeout"), 1, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateDispatch(context.Background(), id, domain.DispatchUpdate{
		LastError: strPtr("connection timeout"),
		Attempts:  1,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_UpdateDispatch_MissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInvoiceRepo(mock)

	mock.ExpectExec("UPDATE invoices SET sent").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateDispatch(context.Background(), uuid.New(), domain.DispatchUpdate{Attempts: 1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
