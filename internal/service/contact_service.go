package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxContactMessageLen = 4000
	defaultContactPage   = 20
)

// ContactServiceImpl implements ports.ContactService.
type ContactServiceImpl struct {
	contactRepo ports.ContactRepository
	log         zerolog.Logger
}

// NewContactService creates a new ContactServiceImpl.
func NewContactService(contactRepo ports.ContactRepository, log zerolog.Logger) *ContactServiceImpl {
	return &ContactServiceImpl{contactRepo: contactRepo, log: log}
}

// Submit stores a contact form submission.
func (s *ContactServiceImpl) Submit(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	message := strings.TrimSpace(in.Message)

	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, apperror.Validation("invalid email")
	}
	if message == "" {
		return nil, apperror.Validation("message is required")
	}
	if len(message) > maxContactMessageLen {
		return nil, apperror.Validation("message too long")
	}

	m := &domain.ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     in.Phone,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.contactRepo.Create(ctx, m); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("store contact message: %w", err))
	}

	s.log.Info().Str("message_id", m.ID.String()).Msg("contact message received")
	return m, nil
}

// List returns a page of the admin inbox, newest first, with the total count.
func (s *ContactServiceImpl) List(ctx context.Context, page, pageSize int) ([]domain.ContactMessage, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultContactPage
	}

	messages, total, err := s.contactRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(fmt.Errorf("list contact messages: %w", err))
	}
	return messages, total, nil
}
