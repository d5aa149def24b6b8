// Package service defines domain-level interfaces implemented by infrastructure.
package service

import (
	"context"

	"supplylink/internal/domain/entity"

	"github.com/google/uuid"
)

// DealerIndex is a spatial lookup over dealer positions. Implementations may
// use a full scan, grid buckets, Redis GEO or a SQL geo query; WithinRadius
// must return the same set of dealers regardless of the indexing strategy.
type DealerIndex interface {
	// Upsert adds the dealer to the index or refreshes its position and
	// display info.
	Upsert(ctx context.Context, dealer *entity.Dealer) error

	// Remove drops the dealer from the index.
	Remove(ctx context.Context, dealerID uuid.UUID) error

	// WithinRadius returns all active dealers within radiusKm of center, in
	// no particular order. radiusKm must be greater than zero.
	WithinRadius(ctx context.Context, center entity.Position, radiusKm float64) ([]*entity.Dealer, error)
}
