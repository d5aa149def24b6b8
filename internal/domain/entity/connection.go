package entity

import (
	"time"

	"github.com/google/uuid"
)

// Connection represents the relationship between one shopkeeper and one dealer.
// Records are never physically deleted; terminal states are kept for history,
// and a new request after REJECTED or REVOKED creates a fresh record.
// State is mutated only through the connection registry.
type Connection struct {
	ID           uuid.UUID       `json:"id"`            // The Global Unique Identifier (GUID) for the connection.
	ShopkeeperID uuid.UUID       `json:"shopkeeper_id"` // The requesting shopkeeper.
	DealerID     uuid.UUID       `json:"dealer_id"`     // The dealer being connected to.
	State        ConnectionState `json:"state"`         // Current lifecycle state.
	Version      int64           `json:"-"`             // Optimistic-concurrency version, incremented on every state write.
	CreatedAt    time.Time       `json:"created_at"`    // Timestamp of the connection request.
	UpdatedAt    time.Time       `json:"updated_at"`    // Timestamp of the last state change.
}

// IsParty reports whether id is one of the two parties of the connection.
func (c *Connection) IsParty(id uuid.UUID) bool {
	return c.ShopkeeperID == id || c.DealerID == id
}
