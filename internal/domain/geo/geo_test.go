package geo

import (
	"math"
	"testing"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newYork  = entity.Position{Latitude: 40.7128, Longitude: -74.0060}
	brooklyn = entity.Position{Latitude: 40.6782, Longitude: -73.9442}
)

func TestDistanceKm_Identity(t *testing.T) {
	positions := []entity.Position{
		{},
		newYork,
		{Latitude: -90, Longitude: 180},
		{Latitude: 90, Longitude: -180},
	}

	for _, p := range positions {
		d, err := DistanceKm(p, p)
		require.NoError(t, err)
		assert.Zero(t, d)
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	ab, err := DistanceKm(newYork, brooklyn)
	require.NoError(t, err)
	ba, err := DistanceKm(brooklyn, newYork)
	require.NoError(t, err)

	assert.InEpsilon(t, ab, ba, 1e-12)
}

func TestDistanceKm_NewYorkToBrooklyn(t *testing.T) {
	d, err := DistanceKm(newYork, brooklyn)
	require.NoError(t, err)

	// Roughly 5.4 km between Manhattan and Brooklyn reference points.
	assert.InDelta(t, 5.4, d, 0.3)
}

func TestDistanceKm_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		pos  entity.Position
	}{
		{name: "latitude above range", pos: entity.Position{Latitude: 91, Longitude: 0}},
		{name: "latitude below range", pos: entity.Position{Latitude: -90.0001, Longitude: 0}},
		{name: "longitude above range", pos: entity.Position{Latitude: 0, Longitude: 180.5}},
		{name: "longitude below range", pos: entity.Position{Latitude: 0, Longitude: -181}},
		{name: "NaN latitude", pos: entity.Position{Latitude: math.NaN(), Longitude: 0}},
		{name: "infinite longitude", pos: entity.Position{Latitude: 0, Longitude: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DistanceKm(tt.pos, newYork)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INVALID_COORDINATE", appErr.ErrorCode())

			// Second argument is validated too.
			_, err = DistanceKm(newYork, tt.pos)
			require.Error(t, err)
		})
	}
}

func TestPrefilterRadiusKm_CoversMetricDrift(t *testing.T) {
	// Spheroid distance deviates from the mean-radius haversine by up to
	// ~0.5%; alternate Earth radii (WGS84 6378.137, Redis 6372.797) by ~0.1%.
	// The padding must exceed both so no prefilter drops an in-radius dealer.
	for _, radiusKm := range []float64{0.5, 1, 10, 50} {
		padded := PrefilterRadiusKm(radiusKm)
		assert.Greater(t, padded, radiusKm*1.005)
		assert.Less(t, padded, radiusKm*1.05)
	}
}

func TestValidatePosition_BoundaryValues(t *testing.T) {
	valid := []entity.Position{
		{Latitude: 90, Longitude: 180},
		{Latitude: -90, Longitude: -180},
		{Latitude: 0, Longitude: 0},
	}
	for _, p := range valid {
		assert.NoError(t, ValidatePosition(p))
	}
}
