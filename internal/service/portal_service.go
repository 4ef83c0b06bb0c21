package service

import (
	"context"
	"fmt"
	"time"

	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"

	"github.com/rs/zerolog"
)

// PortalServiceImpl implements ports.PortalService.
type PortalServiceImpl struct {
	clientRepo  ports.ClientRepository
	projectRepo ports.ProjectRepository
	invoiceRepo ports.InvoiceRepository
	log         zerolog.Logger
}

// NewPortalService creates a new PortalServiceImpl.
func NewPortalService(
	clientRepo ports.ClientRepository,
	projectRepo ports.ProjectRepository,
	invoiceRepo ports.InvoiceRepository,
	log zerolog.Logger,
) *PortalServiceImpl {
	return &PortalServiceImpl{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
		log:         log,
	}
}

// Login matches CPF + birth date against client records and loads the client's
// projects and invoices. A mismatch on either field yields the same
// credentials error, so the endpoint does not leak which CPFs exist.
func (s *PortalServiceImpl) Login(ctx context.Context, cpf string, birthDate time.Time) (*ports.PortalSession, error) {
	client, err := s.clientRepo.GetByCPFAndBirthDate(ctx, cpf, birthDate)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find client: %w", err))
	}
	if client == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	projects, err := s.projectRepo.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list projects: %w", err))
	}

	invoices, err := s.invoiceRepo.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list invoices: %w", err))
	}

	s.log.Info().
		Str("client_id", client.ID.String()).
		Int("projects", len(projects)).
		Int("invoices", len(invoices)).
		Msg("portal login")

	return &ports.PortalSession{
		Client:   client,
		Projects: projects,
		Invoices: invoices,
	}, nil
}
