package impl

import (
	"context"
	"time"

	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/geo"
	"supplylink/internal/domain/repository"
	"supplylink/internal/domain/service"
	"supplylink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type dealerService struct {
	dealerRepo  repository.DealerRepository
	dealerIndex service.DealerIndex
}

// DealerServiceParams holds dependencies for DealerService, injected by Fx.
type DealerServiceParams struct {
	fx.In

	DealerRepo  repository.DealerRepository
	DealerIndex service.DealerIndex
}

// NewDealerService creates a new dealer service instance
func NewDealerService(params DealerServiceParams) usecase.DealerUsecase {
	return &dealerService{
		dealerRepo:  params.DealerRepo,
		dealerIndex: params.DealerIndex,
	}
}

// UpdateDealerLocation moves the dealer and re-indexes it. The canonical
// store is written first; the index follows so a failed index write never
// leaves the store behind.
func (s *dealerService) UpdateDealerLocation(ctx context.Context, dealerID uuid.UUID, input usecase.UpdateDealerLocationInput) (*entity.Dealer, error) {
	position := entity.Position{Latitude: input.Latitude, Longitude: input.Longitude}
	if err := geo.ValidatePosition(position); err != nil {
		return nil, err
	}

	dealer, err := s.dealerRepo.FindDealerByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			return nil, domainerrors.ErrDealerNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to load dealer")
	}

	dealer.Position = position
	if input.LocationName != "" {
		dealer.LocationName = input.LocationName
	}
	dealer.UpdatedAt = time.Now()

	if err := s.dealerRepo.UpsertDealer(ctx, dealer); err != nil {
		return nil, domainerrors.NewStoreUnavailableError(err, "failed to update dealer")
	}

	if err := s.dealerIndex.Upsert(ctx, dealer); err != nil {
		return nil, domainerrors.NewStoreUnavailableError(err, "failed to re-index dealer")
	}

	return dealer, nil
}

// DeactivateDealer hides the dealer from discovery without deleting it.
func (s *dealerService) DeactivateDealer(ctx context.Context, dealerID uuid.UUID) error {
	if err := s.dealerRepo.SetDealerActive(ctx, dealerID, false); err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			return domainerrors.ErrDealerNotFound
		}

		return domainerrors.NewStoreUnavailableError(err, "failed to deactivate dealer")
	}

	if err := s.dealerIndex.Remove(ctx, dealerID); err != nil {
		return domainerrors.NewStoreUnavailableError(err, "failed to remove dealer from index")
	}

	return nil
}
