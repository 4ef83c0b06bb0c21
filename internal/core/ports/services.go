package ports

import (
	"context"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
)

// SendResult is the tagged outcome of one channel delivery attempt.
// A failed attempt is data, not an error: transport problems, gateway
// rejections and simulated failures all land here as Reason.
type SendResult struct {
	Success bool
	Reason  string
}

// NotificationChannel attempts to deliver one invoice notice to a recipient.
// There are no delivery-receipt callbacks; the result is final from the
// caller's perspective.
type NotificationChannel interface {
	Send(ctx context.Context, invoice *domain.Invoice, recipientPhone string) SendResult
}

// DispatchSummary aggregates the outcome of one sweep.
type DispatchSummary struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"` // busy in a concurrent single send
}

// DispatchService drives delivery attempts and keeps store and view consistent.
type DispatchService interface {
	// SendOne performs a single delivery attempt for the invoice, already-sent
	// invoices included (resend). Returns the updated invoice and a
	// human-readable outcome message.
	SendOne(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, string, error)
	// SendAllPending sweeps the client's invoices in due-date order, attempting
	// every one with Sent == false. Per-item channel failures are recorded and
	// the sweep continues; store errors abort it. The returned collection
	// reflects all committed outcomes.
	SendAllPending(ctx context.Context, clientID uuid.UUID) ([]domain.Invoice, *DispatchSummary, error)
}

// PortalSession is what a client sees after logging in.
type PortalSession struct {
	Client   *domain.Client
	Projects []domain.Project
	Invoices []domain.Invoice
}

// PortalService is the client self-service area.
type PortalService interface {
	// Login matches CPF + birth date against the client records. This is a
	// record lookup, not a security boundary; rate limiting guards it.
	Login(ctx context.Context, cpf string, birthDate time.Time) (*PortalSession, error)
}

// PropertyInput holds validated input for creating or updating a property.
type PropertyInput struct {
	Name        string
	Description string
	Location    string
	PriceCents  int64
	ImageURL    string
	Status      domain.PropertyStatus
}

// PropertyService manages the portfolio.
type PropertyService interface {
	Create(ctx context.Context, in PropertyInput) (*domain.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	List(ctx context.Context, status *domain.PropertyStatus) ([]domain.Property, error)
	Update(ctx context.Context, id uuid.UUID, in PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactInput holds validated input for a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   *string
	Message string
}

// ContactService handles the public contact form and the admin inbox.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context, page, pageSize int) ([]domain.ContactMessage, int64, error)
}

// AuthService authenticates the back-office operator.
type AuthService interface {
	Login(ctx context.Context, password string) (string, time.Time, error) // token, expiry, error
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
	Role    string
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// ClientLookup is the admin-side client search result.
type ClientLookup struct {
	Client   *domain.Client
	Invoices []domain.Invoice
	Counts   domain.DispatchCounts
}

// ClientService is the admin-side view over clients and their invoices.
type ClientService interface {
	LookupByCPF(ctx context.Context, cpf string) (*ClientLookup, error)
	ListInvoices(ctx context.Context, clientID uuid.UUID) ([]domain.Invoice, domain.DispatchCounts, error)
	ListAttempts(ctx context.Context, invoiceID uuid.UUID) ([]domain.DispatchLog, error)
}
