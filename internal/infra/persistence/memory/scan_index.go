package memory

import (
	"context"
	"fmt"
	"sync"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/geo"
	"supplylink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// ScanIndex is the simplest dealer index: a flat map with a bounding-box
// prefilter and an exact distance check per candidate. It is the reference
// backend the others are tested against.
type ScanIndex struct {
	mu      sync.RWMutex
	dealers map[uuid.UUID]*entity.Dealer
}

// NewScanIndex creates an empty scan index.
func NewScanIndex() service.DealerIndex {
	return &ScanIndex{dealers: make(map[uuid.UUID]*entity.Dealer)}
}

func (idx *ScanIndex) Upsert(_ context.Context, dealer *entity.Dealer) error {
	if err := geo.ValidatePosition(dealer.Position); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.dealers[dealer.ID] = cloneDealer(dealer)

	return nil
}

func (idx *ScanIndex) Remove(_ context.Context, dealerID uuid.UUID) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.dealers, dealerID)

	return nil
}

func (idx *ScanIndex) WithinRadius(_ context.Context, center entity.Position, radiusKm float64) ([]*entity.Dealer, error) {
	if radiusKm <= 0 {
		return nil, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radiusKm %v must be > 0", radiusKm))
	}
	if err := geo.ValidatePosition(center); err != nil {
		return nil, err
	}

	// The box is padded: orb sizes it on the WGS84 radius, which runs a hair
	// tighter than the mean-radius haversine below. Extras fail the exact check.
	bound := orbgeo.NewBoundAroundPoint(orb.Point{center.Longitude, center.Latitude}, geo.PrefilterRadiusKm(radiusKm)*1000)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var matches []*entity.Dealer
	for _, dealer := range idx.dealers {
		if !dealer.IsActive {
			continue
		}
		if !bound.Contains(orb.Point{dealer.Position.Longitude, dealer.Position.Latitude}) {
			continue
		}
		distance, err := geo.DistanceKm(center, dealer.Position)
		if err != nil {
			return nil, err
		}
		if distance > radiusKm {
			continue
		}
		matches = append(matches, cloneDealer(dealer))
	}

	return matches, nil
}
