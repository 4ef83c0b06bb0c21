package ports

import (
	"context"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
)

// InvoiceRepository defines persistence operations for invoices.
// Get methods return (nil, nil) when the record does not exist.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	// ListByClient returns the client's invoices ordered by due date descending.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Invoice, error)
	// UpdateDispatch writes exactly the four dispatch fields for the given id.
	// Other columns are never touched, so concurrent payment-status updates
	// cannot be clobbered.
	UpdateDispatch(ctx context.Context, id uuid.UUID, u domain.DispatchUpdate) error
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetByCPF(ctx context.Context, cpf string) (*domain.Client, error)
	GetByCPFAndBirthDate(ctx context.Context, cpf string, birthDate time.Time) (*domain.Client, error)
}

// ProjectRepository defines persistence operations for client projects.
type ProjectRepository interface {
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Project, error)
}

// PropertyRepository defines persistence operations for portfolio properties.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	// List returns properties ordered by creation date descending,
	// optionally filtered by status.
	List(ctx context.Context, status *domain.PropertyStatus) ([]domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	List(ctx context.Context, page, pageSize int) ([]domain.ContactMessage, int64, error)
}

// DispatchLogRepository defines the append-only attempt trail.
type DispatchLogRepository interface {
	Create(ctx context.Context, log *domain.DispatchLog) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.DispatchLog, error)
}
