package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the payment state of an invoice. It is independent of the
// dispatch state: a paid invoice may never have been sent and vice versa.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// DispatchState is the derived display state of an invoice's delivery.
type DispatchState string

const (
	DispatchStatePending DispatchState = "pending"
	DispatchStateFailed  DispatchState = "failed"
	DispatchStateSent    DispatchState = "sent"
)

// Invoice is a billable record ("boleto") belonging to a client.
//
// The dispatch fields (Sent, SentAt, LastError, Attempts) are owned exclusively
// by the dispatch coordinator and persisted via partial updates, so a payment
// webhook flipping Status can never clobber them.
type Invoice struct {
	ID          uuid.UUID     `json:"id"`
	ClientID    uuid.UUID     `json:"client_id"`
	Number      string        `json:"number"`
	Description string        `json:"description"`
	AmountCents int64         `json:"amount_cents"` // In centavos
	DueDate     time.Time     `json:"due_date"`
	Status      InvoiceStatus `json:"status"`

	Sent      bool       `json:"sent"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	LastError *string    `json:"last_error,omitempty"`
	Attempts  int        `json:"attempts"`

	CreatedAt time.Time `json:"created_at"`
}

// DispatchUpdate is the partial update written back after a delivery attempt.
// It covers exactly the four coordinator-owned columns.
type DispatchUpdate struct {
	Sent      bool
	SentAt    *time.Time
	LastError *string
	Attempts  int
}

// DispatchState classifies the invoice for display. It is a strict function of
// (Sent, Attempts); LastError presence is deliberately not consulted.
func (i *Invoice) DispatchState() DispatchState {
	switch {
	case i.Sent:
		return DispatchStateSent
	case i.Attempts > 0:
		return DispatchStateFailed
	default:
		return DispatchStatePending
	}
}

// ApplyDispatch returns a copy of the invoice with the dispatch fields replaced.
// The receiver is not mutated; callers hold immutable views.
func (i Invoice) ApplyDispatch(u DispatchUpdate) Invoice {
	i.Sent = u.Sent
	i.SentAt = u.SentAt
	i.LastError = u.LastError
	i.Attempts = u.Attempts
	return i
}

// DispatchCounts aggregates invoices by dispatch state.
type DispatchCounts struct {
	Sent    int `json:"sent"`
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
}

// SummarizeDispatch counts invoices per dispatch state.
func SummarizeDispatch(invoices []Invoice) DispatchCounts {
	var c DispatchCounts
	for idx := range invoices {
		switch invoices[idx].DispatchState() {
		case DispatchStateSent:
			c.Sent++
		case DispatchStateFailed:
			c.Failed++
		default:
			c.Pending++
		}
	}
	return c
}
