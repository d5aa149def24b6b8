// Package impl contains the concrete implementations of the usecase layer.
package impl

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"supplylink/config"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/geo"
	"supplylink/internal/domain/repository"
	"supplylink/internal/domain/service"
	"supplylink/internal/observability"
	"supplylink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type discoveryService struct {
	shopkeeperRepo repository.ShopkeeperRepository
	dealerIndex    service.DealerIndex
	config         *config.Config
}

// DiscoveryServiceParams holds dependencies for DiscoveryService, injected by Fx.
type DiscoveryServiceParams struct {
	fx.In

	ShopkeeperRepo repository.ShopkeeperRepository
	DealerIndex    service.DealerIndex
	Config         *config.Config
}

// NewDiscoveryService creates a new discovery service instance
func NewDiscoveryService(params DiscoveryServiceParams) usecase.DiscoveryUsecase {
	cfg := params.Config
	if cfg.Discovery == nil {
		cfg.Discovery = &config.DiscoveryConfig{
			DefaultRadiusKm: 10,
			MaxRadiusKm:     50,
			MaxResults:      100,
		}
	}

	return &discoveryService{
		shopkeeperRepo: params.ShopkeeperRepo,
		dealerIndex:    params.DealerIndex,
		config:         cfg,
	}
}

// FindNearbyDealers returns active dealers within the radius of the
// shopkeeper's position, closest first.
func (s *discoveryService) FindNearbyDealers(ctx context.Context, shopkeeperID uuid.UUID, input usecase.FindNearbyInput) ([]usecase.DealerMatch, error) {
	started := time.Now()
	defer func() {
		observability.DiscoveryQueriesTotal.Inc()
		observability.DiscoveryQueryDuration.Observe(time.Since(started).Seconds())
	}()

	// Only an absent radius falls back to the default; an explicit zero or
	// negative radius is the caller's mistake and is rejected below.
	radiusKm := s.config.Discovery.DefaultRadiusKm
	if input.RadiusKm != nil {
		radiusKm = *input.RadiusKm
	}
	if radiusKm <= 0 {
		return nil, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radiusKm %v must be > 0", radiusKm))
	}
	if radiusKm > s.config.Discovery.MaxRadiusKm {
		return nil, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radiusKm %v exceeds maximum %v", radiusKm, s.config.Discovery.MaxRadiusKm))
	}

	limit := input.Limit
	if limit < 0 {
		return nil, domainerrors.ErrInvalidLimit.WithDetails(fmt.Sprintf("limit %d must not be negative", limit))
	}
	if limit == 0 || limit > s.config.Discovery.MaxResults {
		limit = s.config.Discovery.MaxResults
	}

	shopkeeper, err := s.shopkeeperRepo.FindShopkeeperByID(ctx, shopkeeperID)
	if err != nil {
		if errors.Is(err, repository.ErrShopkeeperNotFound) {
			return nil, domainerrors.ErrShopkeeperNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to load shopkeeper")
	}

	if err := geo.ValidatePosition(shopkeeper.Position); err != nil {
		return nil, err
	}

	candidates, err := s.dealerIndex.WithinRadius(ctx, shopkeeper.Position, radiusKm)
	if err != nil {
		return nil, domainerrors.NewStoreUnavailableError(err, "dealer index query failed")
	}

	// The index may over-return (bounding-box or geohash prefilters); the
	// exact haversine check here keeps results identical across backends.
	matches := make([]usecase.DealerMatch, 0, len(candidates))
	for _, dealer := range candidates {
		if !dealer.IsActive {
			continue
		}
		distance, err := geo.DistanceKm(shopkeeper.Position, dealer.Position)
		if err != nil {
			return nil, err
		}
		if distance > radiusKm {
			continue
		}
		matches = append(matches, usecase.DealerMatch{Dealer: dealer, DistanceKm: distance})
	}

	sortMatches(matches)

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

// sortMatches orders ascending by distance, breaking ties by dealer ID so
// identical inputs always produce identical output.
func sortMatches(matches []usecase.DealerMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}

		return strings.Compare(matches[i].Dealer.ID.String(), matches[j].Dealer.ID.String()) < 0
	})
}
