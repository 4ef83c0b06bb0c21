package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// DispatchLog is an append-only record of one delivery attempt for an invoice.
type DispatchLog struct {
	ID        string    `json:"id"` // disp_<ULID>
	InvoiceID uuid.UUID `json:"invoice_id"`
	Attempt   int       `json:"attempt"`
	Success   bool      `json:"success"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDispatchLogID returns a sortable prefixed ULID.
func NewDispatchLogID() string {
	t := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return fmt.Sprintf("disp_%s", ulid.MustNew(ulid.Timestamp(t), entropy))
}
