package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dealer represents a supplier a shopkeeper can discover and connect to.
// Dealers are never deleted; deactivation is a flag so existing connections
// keep a valid reference.
type Dealer struct {
	ID           uuid.UUID `json:"id"`            // The Global Unique Identifier (GUID) for the dealer.
	Name         string    `json:"name"`          // The dealer's contact person name.
	CompanyName  string    `json:"company_name"`  // The dealer's company name.
	LocationName string    `json:"location_name"` // Human-readable address shown on dealer cards.
	Email        string    `json:"email"`         // Contact email.
	Phone        string    `json:"phone"`         // Contact phone number.
	Position     Position  `json:"position"`      // The dealer's geographic position.
	IsActive     bool      `json:"is_active"`     // Inactive dealers are hidden from discovery.
	CreatedAt    time.Time `json:"created_at"`    // Timestamp of dealer registration.
	UpdatedAt    time.Time `json:"updated_at"`    // Timestamp of the last modification.
}
