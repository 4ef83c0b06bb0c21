package domain

import (
	"time"

	"github.com/google/uuid"
)

// PropertyStatus is the marketing state of a development.
type PropertyStatus string

const (
	PropertyStatusAvailable         PropertyStatus = "available"
	PropertyStatusUnderConstruction PropertyStatus = "under_construction"
	PropertyStatusDelivered         PropertyStatus = "delivered"
	PropertyStatusSold              PropertyStatus = "sold"
)

// ValidPropertyStatus reports whether s is a known status.
func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusUnderConstruction,
		PropertyStatusDelivered, PropertyStatusSold:
		return true
	}
	return false
}

// Property is a development listed in the public portfolio and managed from
// the admin back office.
type Property struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	PriceCents  int64          `json:"price_cents"`
	ImageURL    string         `json:"image_url"`
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
