package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"
	"realty-backoffice/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DispatchServiceImpl implements ports.DispatchService.
//
// All delivery attempts for one invoice are serialized through an in-flight
// set owned by the service; a sweep processes its items strictly one at a
// time, so attempt counters never race.
type DispatchServiceImpl struct {
	invoiceRepo ports.InvoiceRepository
	clientRepo  ports.ClientRepository
	logRepo     ports.DispatchLogRepository
	channel     ports.NotificationChannel
	// sendInterval paces consecutive sweep attempts toward the channel.
	// Policy knob, not a correctness requirement.
	sendInterval time.Duration
	log          zerolog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}

	now func() time.Time // overridable in tests
}

// NewDispatchService creates a new dispatch coordinator.
func NewDispatchService(
	invoiceRepo ports.InvoiceRepository,
	clientRepo ports.ClientRepository,
	logRepo ports.DispatchLogRepository,
	channel ports.NotificationChannel,
	sendInterval time.Duration,
	log zerolog.Logger,
) *DispatchServiceImpl {
	return &DispatchServiceImpl{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		logRepo:      logRepo,
		channel:      channel,
		sendInterval: sendInterval,
		log:          log,
		inFlight:     make(map[uuid.UUID]struct{}),
		now:          time.Now,
	}
}

// SendOne performs one delivery attempt for the invoice. Already-sent invoices
// are re-sent; there is no guard beyond the in-flight set.
func (s *DispatchServiceImpl) SendOne(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, string, error) {
	if invoiceID == uuid.Nil {
		return nil, "", apperror.ErrInvalidInvoice("missing id")
	}

	if !s.tryAcquire(invoiceID) {
		return nil, "", apperror.ErrDispatchInFlight()
	}
	defer s.release(invoiceID)

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", apperror.ErrDatabaseError(err)
	}
	if invoice == nil {
		return nil, "", apperror.ErrInvoiceNotFound()
	}
	// Reject before any channel call: no attempt is counted for bad input.
	if invoice.AmountCents < 0 {
		return nil, "", apperror.ErrInvalidInvoice("amount must be non-negative")
	}

	return s.attempt(ctx, invoice)
}

// SendAllPending sweeps the client's invoices sequentially in stored order,
// attempting every invoice with Sent == false regardless of prior attempts.
// Channel failures are recorded per item and the sweep continues; a store
// error aborts it, since continuing would likely fail uniformly and burn
// attempts. Each item's update is committed immediately, so a re-run only
// re-attempts what is still unsent.
func (s *DispatchServiceImpl) SendAllPending(ctx context.Context, clientID uuid.UUID) ([]domain.Invoice, *ports.DispatchSummary, error) {
	invoices, err := s.invoiceRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, nil, apperror.ErrDatabaseError(err)
	}

	// Callers get a fresh collection; shared views are never mutated in place.
	result := make([]domain.Invoice, len(invoices))
	copy(result, invoices)

	summary := &ports.DispatchSummary{}
	paced := false

	for i := range invoices {
		if invoices[i].Sent {
			continue
		}

		if paced {
			if err := s.pause(ctx); err != nil {
				// Cancelled: stop before the next item, committed work stands.
				return result, summary, err
			}
		}

		if !s.tryAcquire(invoices[i].ID) {
			// Busy in a concurrent single send; one attempt at a time per invoice.
			summary.Skipped++
			continue
		}

		invoice := invoices[i]
		updated, _, err := s.attempt(ctx, &invoice)
		s.release(invoice.ID)
		paced = true

		if err != nil {
			s.log.Error().Err(err).
				Str("invoice_id", invoice.ID.String()).
				Msg("sweep aborted on storage error")
			return result, summary, err
		}

		summary.Attempted++
		if updated.Sent {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		result[i] = *updated
	}

	s.log.Info().
		Str("client_id", clientID.String()).
		Int("attempted", summary.Attempted).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("dispatch sweep finished")

	return result, summary, nil
}

// attempt runs one channel delivery and reconciles the outcome with the store.
// The caller must hold the invoice's in-flight slot.
func (s *DispatchServiceImpl) attempt(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, string, error) {
	phone := ""
	client, err := s.clientRepo.GetByID(ctx, invoice.ClientID)
	if err != nil {
		// No channel call happened; the attempt counter stays untouched.
		return nil, "", apperror.ErrDatabaseError(err)
	}
	if client != nil && client.Phone != nil {
		phone = *client.Phone
	}

	res := s.channel.Send(ctx, invoice, phone)

	update := domain.DispatchUpdate{Attempts: invoice.Attempts + 1}
	if res.Success {
		sentAt := s.now().UTC()
		update.Sent = true
		update.SentAt = &sentAt
	} else {
		reason := res.Reason
		update.LastError = &reason
	}

	if err := s.invoiceRepo.UpdateDispatch(ctx, invoice.ID, update); err != nil {
		// The channel attempt happened but the store does not reflect it.
		// Never report channel success here; this is a reportable inconsistency.
		s.log.Error().Err(err).
			Str("invoice_id", invoice.ID.String()).
			Bool("channel_success", res.Success).
			Msg("failed to persist dispatch outcome")
		return nil, "", apperror.ErrDispatchNotPersisted(err)
	}

	s.appendLog(ctx, invoice.ID, update, res)

	updated := invoice.ApplyDispatch(update)

	var msg string
	if res.Success {
		msg = fmt.Sprintf("Boleto %s sent via WhatsApp", invoice.Number)
		s.log.Info().
			Str("invoice_id", invoice.ID.String()).
			Int("attempts", update.Attempts).
			Msg("invoice dispatched")
	} else {
		msg = fmt.Sprintf("Boleto %s delivery failed: %s", invoice.Number, res.Reason)
		s.log.Warn().
			Str("invoice_id", invoice.ID.String()).
			Int("attempts", update.Attempts).
			Str("reason", res.Reason).
			Msg("invoice dispatch failed")
	}

	return &updated, msg, nil
}

// appendLog records the attempt in the audit trail. Best effort: the trail is
// observability, not source of truth.
func (s *DispatchServiceImpl) appendLog(ctx context.Context, invoiceID uuid.UUID, u domain.DispatchUpdate, res ports.SendResult) {
	entry := &domain.DispatchLog{
		ID:        domain.NewDispatchLogID(),
		InvoiceID: invoiceID,
		Attempt:   u.Attempts,
		Success:   res.Success,
		Error:     u.LastError,
		CreatedAt: s.now().UTC(),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.log.Warn().Err(err).
			Str("invoice_id", invoiceID.String()).
			Msg("failed to append dispatch log")
	}
}

// pause waits the configured interval or until the context is cancelled.
func (s *DispatchServiceImpl) pause(ctx context.Context) error {
	if s.sendInterval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.sendInterval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *DispatchServiceImpl) tryAcquire(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *DispatchServiceImpl) release(id uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, id)
	s.mu.Unlock()
}
