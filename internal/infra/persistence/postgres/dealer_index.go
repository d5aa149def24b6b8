package postgres

import (
	"context"
	"fmt"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/geo"
	"supplylink/internal/domain/service"
	"supplylink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// dealerIndex answers radius queries straight from the dealers table with
// PostGIS ST_DWithin, so the canonical store and the index are the same rows
// and can never diverge.
type dealerIndex struct {
	db *gorm.DB
}

// NewDealerIndex is the constructor for the postgres-backed dealer index.
func NewDealerIndex(db *gorm.DB) service.DealerIndex {
	return &dealerIndex{
		db: db,
	}
}

// Upsert is a no-op: the dealer repository already wrote the row this index
// queries.
func (idx *dealerIndex) Upsert(_ context.Context, _ *entity.Dealer) error {
	return nil
}

// Remove is a no-op: deactivated dealers are filtered out by the query.
func (idx *dealerIndex) Remove(_ context.Context, _ uuid.UUID) error {
	return nil
}

// WithinRadius finds active dealers within radiusKm of center. ST_DWithin on
// geography measures spheroid distance, which can run under the mean-radius
// haversine near the boundary, so the radius is padded; the engine's exact
// re-check discards the extras.
func (idx *dealerIndex) WithinRadius(ctx context.Context, center entity.Position, radiusKm float64) ([]*entity.Dealer, error) {
	if radiusKm <= 0 {
		return nil, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radiusKm %v must be > 0", radiusKm))
	}
	if err := geo.ValidatePosition(center); err != nil {
		return nil, err
	}

	var dealerModels []*model.DealerModel

	query := `
		SELECT *
		FROM dealers
		WHERE is_active = true
		  AND ST_DWithin(
		    ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
		    ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
		    ?
		  )
	`

	radiusMeters := geo.PrefilterRadiusKm(radiusKm) * 1000
	if err := idx.db.WithContext(ctx).
		Raw(query, center.Longitude, center.Latitude, radiusMeters).
		Scan(&dealerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find dealers within radius")
	}

	dealers := make([]*entity.Dealer, 0, len(dealerModels))
	for _, dealerM := range dealerModels {
		dealers = append(dealers, toDealerDomain(dealerM))
	}

	return dealers, nil
}
