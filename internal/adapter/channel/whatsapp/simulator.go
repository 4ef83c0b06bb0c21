// Package whatsapp provides the outbound WhatsApp notification channel in two
// flavors: a simulator for development and a gateway client for production.
package whatsapp

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/ports"

	"github.com/rs/zerolog"
)

const simulatedFailureReason = "WhatsApp API connection failed"

// Simulator implements ports.NotificationChannel without an external service.
// Each send takes a fixed latency and fails with the configured probability,
// which keeps the retry and sweep paths exercisable in development.
type Simulator struct {
	failureRate float64
	latency     time.Duration
	log         zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a simulator with the given failure probability [0,1].
func NewSimulator(failureRate float64, latency time.Duration, log zerolog.Logger) *Simulator {
	return &Simulator{
		failureRate: failureRate,
		latency:     latency,
		log:         log,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededSimulator creates a simulator with a fixed seed for deterministic tests.
func NewSeededSimulator(failureRate float64, latency time.Duration, seed int64, log zerolog.Logger) *Simulator {
	s := NewSimulator(failureRate, latency, log)
	s.rng = rand.New(rand.NewSource(seed))
	return s
}

// Send simulates one delivery. Cancellation during the latency window counts
// as a failed attempt, same as a real transport cut mid-request.
func (s *Simulator) Send(ctx context.Context, invoice *domain.Invoice, recipientPhone string) ports.SendResult {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ports.SendResult{Reason: ctx.Err().Error()}
		case <-t.C:
		}
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll < s.failureRate {
		s.log.Debug().
			Str("invoice_id", invoice.ID.String()).
			Msg("simulated delivery failure")
		return ports.SendResult{Reason: simulatedFailureReason}
	}

	s.log.Debug().
		Str("invoice_id", invoice.ID.String()).
		Str("recipient", recipientPhone).
		Msg("simulated delivery")
	return ports.SendResult{Success: true}
}
