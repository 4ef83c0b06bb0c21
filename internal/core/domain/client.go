package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Client is a customer of the real-estate company.
// CPF is stored normalized as 000.000.000-00.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	BirthDate time.Time `json:"birth_date"` // date only, midnight UTC
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeCPF accepts a CPF with or without punctuation and returns the
// canonical 000.000.000-00 form. Returns false when the input does not carry
// exactly 11 digits.
func NormalizeCPF(raw string) (string, bool) {
	digits := make([]byte, 0, 11)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == '.' || c == '-' || c == ' ':
			// punctuation is tolerated
		default:
			return "", false
		}
	}
	if len(digits) != 11 {
		return "", false
	}
	return fmt.Sprintf("%s.%s.%s-%s", digits[0:3], digits[3:6], digits[6:9], digits[9:11]), true
}

// Project is a development unit a client has purchased into,
// shown in the client portal.
type Project struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"client_id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"`
	Completion int       `json:"completion"` // percent, 0-100
}
