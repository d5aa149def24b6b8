package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/geo"
	"supplylink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const geoKey = "dealers:geo"

// dealerIndex stores dealer positions in a Redis GEO set and the remaining
// card fields in one hash per dealer.
type dealerIndex struct {
	client *redis.Client
}

// NewDealerIndex is the constructor for the Redis-backed dealer index.
func NewDealerIndex(client *redis.Client) service.DealerIndex {
	return &dealerIndex{
		client: client,
	}
}

func metaKey(dealerID string) string {
	return "dealers:meta:" + dealerID
}

func (idx *dealerIndex) Upsert(ctx context.Context, dealer *entity.Dealer) error {
	if err := geo.ValidatePosition(dealer.Position); err != nil {
		return err
	}

	if err := idx.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      dealer.ID.String(),
		Longitude: dealer.Position.Longitude,
		Latitude:  dealer.Position.Latitude,
	}).Err(); err != nil {
		return errors.Wrap(err, "failed to add dealer to geo set")
	}

	if err := idx.client.HSet(ctx, metaKey(dealer.ID.String()), map[string]any{
		"name":         dealer.Name,
		"companyName":  dealer.CompanyName,
		"locationName": dealer.LocationName,
		"email":        dealer.Email,
		"phone":        dealer.Phone,
		"isActive":     strconv.FormatBool(dealer.IsActive),
		"updatedAt":    dealer.UpdatedAt.Format(time.RFC3339Nano),
	}).Err(); err != nil {
		return errors.Wrap(err, "failed to store dealer metadata")
	}

	return nil
}

func (idx *dealerIndex) Remove(ctx context.Context, dealerID uuid.UUID) error {
	if err := idx.client.ZRem(ctx, geoKey, dealerID.String()).Err(); err != nil {
		return errors.Wrap(err, "failed to remove dealer from geo set")
	}

	if err := idx.client.Del(ctx, metaKey(dealerID.String())).Err(); err != nil {
		return errors.Wrap(err, "failed to remove dealer metadata")
	}

	return nil
}

func (idx *dealerIndex) WithinRadius(ctx context.Context, center entity.Position, radiusKm float64) ([]*entity.Dealer, error) {
	if radiusKm <= 0 {
		return nil, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radiusKm %v must be > 0", radiusKm))
	}
	if err := geo.ValidatePosition(center); err != nil {
		return nil, err
	}

	// GEOSEARCH distances use Redis' own Earth radius, not the haversine
	// radius the engine re-checks with, so the search radius is padded.
	locations, err := idx.client.GeoSearchLocation(ctx, geoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  center.Longitude,
			Latitude:   center.Latitude,
			Radius:     geo.PrefilterRadiusKm(radiusKm),
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to search dealers by radius")
	}

	dealers := make([]*entity.Dealer, 0, len(locations))
	for _, location := range locations {
		dealer, err := idx.loadDealer(ctx, location)
		if err != nil {
			return nil, err
		}
		if dealer == nil || !dealer.IsActive {
			continue
		}
		dealers = append(dealers, dealer)
	}

	return dealers, nil
}

func (idx *dealerIndex) loadDealer(ctx context.Context, location redis.GeoLocation) (*entity.Dealer, error) {
	dealerID, err := uuid.Parse(location.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed dealer ID %q in geo set", location.Name)
	}

	meta, err := idx.client.HGetAll(ctx, metaKey(location.Name)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dealer metadata")
	}
	if len(meta) == 0 {
		// Geo entry without metadata: a half-removed dealer, skip it.
		return nil, nil
	}

	dealer := &entity.Dealer{
		ID:           dealerID,
		Name:         meta["name"],
		CompanyName:  meta["companyName"],
		LocationName: meta["locationName"],
		Email:        meta["email"],
		Phone:        meta["phone"],
		Position: entity.Position{
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
		},
		IsActive: meta["isActive"] == "true",
	}

	if raw, ok := meta["updatedAt"]; ok {
		if updatedAt, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			dealer.UpdatedAt = updatedAt
		}
	}

	return dealer, nil
}
