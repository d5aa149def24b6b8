// Package model holds the GORM table structs for the postgres store.
package model

import (
	"time"

	"github.com/google/uuid"
)

// DealerModel is the GORM-specific struct for the 'dealers' table.
type DealerModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	CompanyName  string    `gorm:"type:varchar(255);not null"`
	LocationName string    `gorm:"type:varchar(255)"`
	Email        string    `gorm:"type:varchar(255)"`
	Phone        string    `gorm:"type:varchar(50)"`
	Latitude     float64   `gorm:"type:decimal(10,8);not null"`
	Longitude    float64   `gorm:"type:decimal(11,8);not null"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (DealerModel) TableName() string {
	return "dealers"
}
