package memory

import (
	"context"
	"fmt"
	"math"
	"sync"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/geo"
	"supplylink/internal/domain/service"

	"github.com/google/uuid"
)

// Approximate ground lengths of one degree, used only for cell sizing and
// ring spans. Exactness is not needed: a too-large ring over-returns and the
// per-candidate distance check discards the excess.
const (
	kmPerLatDegree = 110.574
	kmPerLonDegree = 111.320
)

type gridCell struct {
	latIdx int
	lonIdx int
}

// GridIndex buckets dealers into fixed-size latitude/longitude cells so a
// radius query touches only the cells overlapping the search ring instead of
// every dealer.
type GridIndex struct {
	cellSizeDeg float64

	mu        sync.RWMutex
	cells     map[gridCell]map[uuid.UUID]*entity.Dealer
	positions map[uuid.UUID]gridCell
}

// NewGridIndex creates a grid index with the given cell edge length.
func NewGridIndex(cellSizeKm float64) service.DealerIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = 5
	}

	return &GridIndex{
		cellSizeDeg: cellSizeKm / kmPerLatDegree,
		cells:       make(map[gridCell]map[uuid.UUID]*entity.Dealer),
		positions:   make(map[uuid.UUID]gridCell),
	}
}

func (idx *GridIndex) cellFor(position entity.Position) gridCell {
	return gridCell{
		latIdx: int(math.Floor(position.Latitude / idx.cellSizeDeg)),
		lonIdx: int(math.Floor(position.Longitude / idx.cellSizeDeg)),
	}
}

func (idx *GridIndex) Upsert(_ context.Context, dealer *entity.Dealer) error {
	if err := geo.ValidatePosition(dealer.Position); err != nil {
		return err
	}

	cell := idx.cellFor(dealer.Position)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if previous, ok := idx.positions[dealer.ID]; ok && previous != cell {
		delete(idx.cells[previous], dealer.ID)
		if len(idx.cells[previous]) == 0 {
			delete(idx.cells, previous)
		}
	}

	bucket, ok := idx.cells[cell]
	if !ok {
		bucket = make(map[uuid.UUID]*entity.Dealer)
		idx.cells[cell] = bucket
	}
	bucket[dealer.ID] = cloneDealer(dealer)
	idx.positions[dealer.ID] = cell

	return nil
}

func (idx *GridIndex) Remove(_ context.Context, dealerID uuid.UUID) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	cell, ok := idx.positions[dealerID]
	if !ok {
		return nil
	}

	delete(idx.cells[cell], dealerID)
	if len(idx.cells[cell]) == 0 {
		delete(idx.cells, cell)
	}
	delete(idx.positions, dealerID)

	return nil
}

func (idx *GridIndex) WithinRadius(_ context.Context, center entity.Position, radiusKm float64) ([]*entity.Dealer, error) {
	if radiusKm <= 0 {
		return nil, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radiusKm %v must be > 0", radiusKm))
	}
	if err := geo.ValidatePosition(center); err != nil {
		return nil, err
	}

	// Spans are padded: the per-degree constants are approximations and the
	// ring must never under-cover the circle. Extras fail the distance check.
	latSpanDeg := radiusKm / kmPerLatDegree * 1.02

	// Longitude degrees shrink toward the poles; the cosine is clamped so the
	// ring widens rather than collapses at extreme latitudes.
	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lonSpanDeg := radiusKm / (kmPerLonDegree * cosLat) * 1.02

	minLatIdx := int(math.Floor((center.Latitude - latSpanDeg) / idx.cellSizeDeg))
	maxLatIdx := int(math.Floor((center.Latitude + latSpanDeg) / idx.cellSizeDeg))
	minLonIdx := int(math.Floor((center.Longitude - lonSpanDeg) / idx.cellSizeDeg))
	maxLonIdx := int(math.Floor((center.Longitude + lonSpanDeg) / idx.cellSizeDeg))

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var matches []*entity.Dealer
	for latIdx := minLatIdx; latIdx <= maxLatIdx; latIdx++ {
		for lonIdx := minLonIdx; lonIdx <= maxLonIdx; lonIdx++ {
			for _, dealer := range idx.cells[gridCell{latIdx: latIdx, lonIdx: lonIdx}] {
				if !dealer.IsActive {
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
		}
	}

	return matches, nil
}
