package repository

import (
	"context"

	"supplylink/internal/domain/entity"
	"supplylink/internal/errors"

	"github.com/google/uuid"
)

// ErrShopkeeperNotFound is returned when a shopkeeper is not found.
var ErrShopkeeperNotFound = errors.New("shopkeeper not found")

// ShopkeeperRepository defines the interface for shopkeeper-related database operations.
type ShopkeeperRepository interface {
	// FindShopkeeperByID retrieves a shopkeeper by its unique ID.
	FindShopkeeperByID(ctx context.Context, id uuid.UUID) (*entity.Shopkeeper, error)

	// SetActiveConnection updates the shopkeeper's active-connection pointer.
	// A nil connectionID clears it.
	SetActiveConnection(ctx context.Context, shopkeeperID uuid.UUID, connectionID *uuid.UUID) error
}
