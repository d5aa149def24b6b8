// Package usecase defines the application-facing contracts of the core.
package usecase

import (
	"context"

	"supplylink/internal/domain/entity"

	"github.com/google/uuid"
)

// DealerMatch is one ranked discovery result.
type DealerMatch struct {
	Dealer     *entity.Dealer `json:"dealer"`
	DistanceKm float64        `json:"distance_km"`
}

// FindNearbyInput carries the caller-chosen search parameters.
// A nil RadiusKm selects the configured default radius; an explicit radius
// must be positive. A zero Limit means no caller-imposed truncation (the
// configured maximum still applies).
type FindNearbyInput struct {
	RadiusKm *float64
	Limit    int
}

// DiscoveryUsecase answers "which dealers are near this shopkeeper" queries.
// It is read-only: no dealer or connection state is mutated.
type DiscoveryUsecase interface {
	// FindNearbyDealers returns active dealers within the radius of the
	// shopkeeper's position, sorted ascending by distance with dealer ID as
	// the tie-break. An empty result is a success, not an error.
	FindNearbyDealers(ctx context.Context, shopkeeperID uuid.UUID, input FindNearbyInput) ([]DealerMatch, error)
}

// UpdateDealerLocationInput carries a dealer position update.
type UpdateDealerLocationInput struct {
	Latitude     float64
	Longitude    float64
	LocationName string
}

// DealerUsecase maintains dealer records and keeps the spatial index in sync
// with the canonical store.
type DealerUsecase interface {
	// UpdateDealerLocation moves the dealer and re-indexes it.
	UpdateDealerLocation(ctx context.Context, dealerID uuid.UUID, input UpdateDealerLocationInput) (*entity.Dealer, error)

	// DeactivateDealer hides the dealer from discovery without deleting it.
	DeactivateDealer(ctx context.Context, dealerID uuid.UUID) error
}
