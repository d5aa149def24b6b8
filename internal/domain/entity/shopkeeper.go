package entity

import (
	"time"

	"github.com/google/uuid"
)

// Shopkeeper represents a shop owner searching for dealers.
// A shopkeeper has at most one connection in the ACTIVE state at any time;
// ActiveConnectionID caches that connection when one exists.
type Shopkeeper struct {
	ID                 uuid.UUID  `json:"id"`                   // The Global Unique Identifier (GUID) for the shopkeeper.
	Name               string     `json:"name"`                 // The shopkeeper's name.
	ShopName           string     `json:"shop_name"`            // The shop's display name.
	LocationName       string     `json:"location_name"`        // Human-readable shop address.
	Position           Position   `json:"position"`             // The shop's geographic position.
	ActiveConnectionID *uuid.UUID `json:"active_connection_id"` // The currently accepted connection, if any.
	CreatedAt          time.Time  `json:"created_at"`           // Timestamp of shopkeeper registration.
	UpdatedAt          time.Time  `json:"updated_at"`           // Timestamp of the last modification.
}
