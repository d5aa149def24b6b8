package model

import (
	"time"

	"github.com/google/uuid"
)

// ShopkeeperModel is the GORM-specific struct for the 'shopkeepers' table.
type ShopkeeperModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name               string     `gorm:"type:varchar(255);not null"`
	ShopName           string     `gorm:"type:varchar(255);not null"`
	LocationName       string     `gorm:"type:varchar(255)"`
	Latitude           float64    `gorm:"type:decimal(10,8);not null"`
	Longitude          float64    `gorm:"type:decimal(11,8);not null"`
	ActiveConnectionID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShopkeeperModel) TableName() string {
	return "shopkeepers"
}
