package model

import (
	"time"

	"github.com/google/uuid"
)

// ConnectionModel is the GORM-specific struct for the 'connections' table.
//
// The one-live-connection rule is enforced by a partial unique index created
// in the migration:
//
//	CREATE UNIQUE INDEX uniq_connections_live_shopkeeper
//	ON connections (shopkeeper_id) WHERE state IN ('PENDING', 'ACTIVE');
//
// The version column backs the optimistic compare-and-swap used for every
// state transition.
type ConnectionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ShopkeeperID uuid.UUID `gorm:"type:uuid;not null;index"`
	DealerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	State        string    `gorm:"type:varchar(20);not null"`
	Version      int64     `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ConnectionModel) TableName() string {
	return "connections"
}
