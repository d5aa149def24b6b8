// Package geo provides pure great-circle distance computation between
// geographic positions.
package geo

import (
	"fmt"
	"math"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0088

// ValidatePosition checks that both coordinates are finite and within range.
func ValidatePosition(p entity.Position) error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) ||
		math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return domainerrors.ErrInvalidCoordinate.WithDetails("coordinate is not a finite number")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return domainerrors.ErrInvalidCoordinate.WithDetails(fmt.Sprintf("latitude %v outside [-90, 90]", p.Latitude))
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return domainerrors.ErrInvalidCoordinate.WithDetails(fmt.Sprintf("longitude %v outside [-180, 180]", p.Longitude))
	}

	return nil
}

// DistanceKm returns the great-circle distance between two positions in
// kilometers using the haversine formula on a spherical Earth. It is
// deterministic and side-effect free; distance(a, b) == distance(b, a) and
// distance(a, a) == 0.
func DistanceKm(a, b entity.Position) (float64, error) {
	if err := ValidatePosition(a); err != nil {
		return 0, err
	}
	if err := ValidatePosition(b); err != nil {
		return 0, err
	}

	return haversineKm(a, b), nil
}

// PrefilterRadiusKm widens a search radius for index prefilters whose
// distance metric is not the haversine above: spheroid distance runs up to
// ~0.5% off, and other engines pin a different Earth radius. A prefilter must
// never under-cover the circle; over-returned candidates fail the exact check.
func PrefilterRadiusKm(radiusKm float64) float64 {
	return radiusKm * 1.01
}

func haversineKm(a, b entity.Position) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}
