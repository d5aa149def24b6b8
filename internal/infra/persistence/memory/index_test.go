package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDealer(lat, lon float64, active bool) *entity.Dealer {
	now := time.Now()

	return &entity.Dealer{
		ID:        uuid.New(),
		Name:      "dealer",
		Position:  entity.Position{Latitude: lat, Longitude: lon},
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func indexBackends(t *testing.T) map[string]service.DealerIndex {
	t.Helper()

	return map[string]service.DealerIndex{
		"scan": NewScanIndex(),
		"grid": NewGridIndex(5),
	}
}

func TestDealerIndex_WithinRadius(t *testing.T) {
	center := entity.Position{Latitude: 40.7128, Longitude: -74.0060}

	for name, index := range indexBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			near := newDealer(40.6782, -73.9442, true)     // Brooklyn, ~5.4 km
			far := newDealer(40.0150, -105.2705, true)     // Boulder, ~2600 km
			inactive := newDealer(40.7130, -74.0060, false)

			require.NoError(t, index.Upsert(ctx, near))
			require.NoError(t, index.Upsert(ctx, far))
			require.NoError(t, index.Upsert(ctx, inactive))

			matches, err := index.WithinRadius(ctx, center, 10)
			require.NoError(t, err)
			require.Len(t, matches, 1)
			assert.Equal(t, near.ID, matches[0].ID)
		})
	}
}

func TestDealerIndex_InvalidRadius(t *testing.T) {
	center := entity.Position{Latitude: 40.7128, Longitude: -74.0060}

	for name, index := range indexBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, radius := range []float64{0, -1} {
				_, err := index.WithinRadius(context.Background(), center, radius)
				require.Error(t, err)

				var appErr domainerrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, "INVALID_ARGUMENT", appErr.ErrorCode())
			}
		})
	}
}

func TestDealerIndex_InvalidCenter(t *testing.T) {
	for name, index := range indexBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := index.WithinRadius(context.Background(), entity.Position{Latitude: 91, Longitude: 0}, 10)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INVALID_COORDINATE", appErr.ErrorCode())
		})
	}
}

func TestDealerIndex_Remove(t *testing.T) {
	center := entity.Position{Latitude: 40.7128, Longitude: -74.0060}

	for name, index := range indexBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			dealer := newDealer(40.7130, -74.0060, true)

			require.NoError(t, index.Upsert(ctx, dealer))
			require.NoError(t, index.Remove(ctx, dealer.ID))

			matches, err := index.WithinRadius(ctx, center, 10)
			require.NoError(t, err)
			assert.Empty(t, matches)
		})
	}
}

func TestDealerIndex_UpsertMoves(t *testing.T) {
	center := entity.Position{Latitude: 40.7128, Longitude: -74.0060}

	for name, index := range indexBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			dealer := newDealer(40.7130, -74.0060, true)
			require.NoError(t, index.Upsert(ctx, dealer))

			// Move far outside the radius; the old location must not linger.
			dealer.Position = entity.Position{Latitude: 51.5074, Longitude: -0.1278}
			require.NoError(t, index.Upsert(ctx, dealer))

			matches, err := index.WithinRadius(ctx, center, 10)
			require.NoError(t, err)
			assert.Empty(t, matches)
		})
	}
}

// The two backends prefilter differently but must agree on the final set.
func TestDealerIndex_GridAgreesWithScan(t *testing.T) {
	ctx := context.Background()
	scan := NewScanIndex()
	grid := NewGridIndex(5)

	rng := rand.New(rand.NewSource(42))
	center := entity.Position{Latitude: 40.7128, Longitude: -74.0060}

	for i := 0; i < 500; i++ {
		dealer := newDealer(
			center.Latitude+(rng.Float64()-0.5),
			center.Longitude+(rng.Float64()-0.5),
			true,
		)
		require.NoError(t, scan.Upsert(ctx, dealer))
		require.NoError(t, grid.Upsert(ctx, dealer))
	}

	for _, radiusKm := range []float64{1, 5, 10, 25, 50} {
		t.Run(fmt.Sprintf("radius_%v", radiusKm), func(t *testing.T) {
			fromScan, err := scan.WithinRadius(ctx, center, radiusKm)
			require.NoError(t, err)
			fromGrid, err := grid.WithinRadius(ctx, center, radiusKm)
			require.NoError(t, err)

			assert.ElementsMatch(t, dealerIDs(fromScan), dealerIDs(fromGrid))
		})
	}
}

func dealerIDs(dealers []*entity.Dealer) []string {
	ids := make([]string, 0, len(dealers))
	for _, dealer := range dealers {
		ids = append(ids, dealer.ID.String())
	}
	sort.Strings(ids)

	return ids
}
