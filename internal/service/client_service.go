package service

import (
	"context"
	"fmt"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"

	"github.com/google/uuid"
)

// ClientServiceImpl implements ports.ClientService, the admin-side view over
// clients and their invoices.
type ClientServiceImpl struct {
	clientRepo  ports.ClientRepository
	invoiceRepo ports.InvoiceRepository
	logRepo     ports.DispatchLogRepository
}

// NewClientService creates a new ClientServiceImpl.
func NewClientService(
	clientRepo ports.ClientRepository,
	invoiceRepo ports.InvoiceRepository,
	logRepo ports.DispatchLogRepository,
) *ClientServiceImpl {
	return &ClientServiceImpl{
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		logRepo:     logRepo,
	}
}

// LookupByCPF finds a client by CPF and loads their invoices with dispatch
// state counts. The CPF may arrive with or without punctuation.
func (s *ClientServiceImpl) LookupByCPF(ctx context.Context, cpf string) (*ports.ClientLookup, error) {
	normalized, ok := domain.NormalizeCPF(cpf)
	if !ok {
		return nil, apperror.Validation("cpf must have 11 digits")
	}

	client, err := s.clientRepo.GetByCPF(ctx, normalized)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find client: %w", err))
	}
	if client == nil {
		return nil, apperror.ErrClientNotFound()
	}

	invoices, err := s.invoiceRepo.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list invoices: %w", err))
	}

	return &ports.ClientLookup{
		Client:   client,
		Invoices: invoices,
		Counts:   domain.SummarizeDispatch(invoices),
	}, nil
}

// ListInvoices returns the client's invoices in due-date order with dispatch
// state counts.
func (s *ClientServiceImpl) ListInvoices(ctx context.Context, clientID uuid.UUID) ([]domain.Invoice, domain.DispatchCounts, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, domain.DispatchCounts{}, apperror.ErrDatabaseError(fmt.Errorf("find client: %w", err))
	}
	if client == nil {
		return nil, domain.DispatchCounts{}, apperror.ErrClientNotFound()
	}

	invoices, err := s.invoiceRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, domain.DispatchCounts{}, apperror.ErrDatabaseError(fmt.Errorf("list invoices: %w", err))
	}

	return invoices, domain.SummarizeDispatch(invoices), nil
}

// ListAttempts returns the delivery attempt trail for one invoice, newest first.
func (s *ClientServiceImpl) ListAttempts(ctx context.Context, invoiceID uuid.UUID) ([]domain.DispatchLog, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find invoice: %w", err))
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound()
	}

	logs, err := s.logRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list attempts: %w", err))
	}
	return logs, nil
}
