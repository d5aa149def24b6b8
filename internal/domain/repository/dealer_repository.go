// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"supplylink/internal/domain/entity"
	"supplylink/internal/errors"

	"github.com/google/uuid"
)

// ErrDealerNotFound is returned when a dealer is not found.
var ErrDealerNotFound = errors.New("dealer not found")

// DealerRepository defines the interface for dealer-related database operations.
type DealerRepository interface {
	// UpsertDealer creates the dealer record or updates it when it already exists.
	UpsertDealer(ctx context.Context, dealer *entity.Dealer) error

	// FindDealerByID retrieves a dealer by its unique ID.
	FindDealerByID(ctx context.Context, id uuid.UUID) (*entity.Dealer, error)

	// SetDealerActive flips the dealer's active flag. Dealers are never
	// deleted so existing connections keep a valid reference.
	SetDealerActive(ctx context.Context, id uuid.UUID, active bool) error
}
