package impl

import (
	"context"
	"fmt"
	"time"

	"supplylink/config"
	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/domain/repository"
	"supplylink/internal/observability"
	"supplylink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type connectionService struct {
	connectionRepo repository.ConnectionRepository
	shopkeeperRepo repository.ShopkeeperRepository
	dealerRepo     repository.DealerRepository
	txManager      repository.TransactionManager
	maxSaveRetries int
}

// ConnectionServiceParams holds dependencies for ConnectionService, injected by Fx.
type ConnectionServiceParams struct {
	fx.In

	ConnectionRepo repository.ConnectionRepository
	ShopkeeperRepo repository.ShopkeeperRepository
	DealerRepo     repository.DealerRepository
	TxManager      repository.TransactionManager
	Config         *config.Config
}

// NewConnectionService creates a new connection service instance
func NewConnectionService(params ConnectionServiceParams) usecase.ConnectionUsecase {
	maxSaveRetries := 3
	if params.Config != nil && params.Config.Connection != nil && params.Config.Connection.MaxSaveRetries > 0 {
		maxSaveRetries = params.Config.Connection.MaxSaveRetries
	}

	return &connectionService{
		connectionRepo: params.ConnectionRepo,
		shopkeeperRepo: params.ShopkeeperRepo,
		dealerRepo:     params.DealerRepo,
		txManager:      params.TxManager,
		maxSaveRetries: maxSaveRetries,
	}
}

// RequestConnection creates a PENDING connection from the shopkeeper to the
// dealer. The one-live-connection rule is enforced atomically by the store,
// so two racing requests for the same shopkeeper yield exactly one PENDING
// record and one conflict.
func (s *connectionService) RequestConnection(ctx context.Context, shopkeeperID, dealerID uuid.UUID) (*entity.Connection, error) {
	if _, err := s.shopkeeperRepo.FindShopkeeperByID(ctx, shopkeeperID); err != nil {
		if errors.Is(err, repository.ErrShopkeeperNotFound) {
			return nil, domainerrors.ErrShopkeeperNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to load shopkeeper")
	}

	dealer, err := s.dealerRepo.FindDealerByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			return nil, domainerrors.ErrDealerNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to load dealer")
	}
	if !dealer.IsActive {
		return nil, domainerrors.ErrDealerInactive
	}

	now := time.Now()
	connection := &entity.Connection{
		ID:           uuid.New(),
		ShopkeeperID: shopkeeperID,
		DealerID:     dealerID,
		State:        entity.ConnectionPending,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.connectionRepo.CreateConnection(ctx, connection); err != nil {
		if errors.Is(err, repository.ErrLiveConnectionExists) {
			observability.ConnectionConflictsTotal.Inc()
			return nil, domainerrors.ErrConnectionConflict
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to create connection")
	}

	observability.ConnectionTransitionsTotal.WithLabelValues(entity.ConnectionPending.String()).Inc()

	return connection, nil
}

// AcceptConnection transitions PENDING -> ACTIVE. The connection save and the
// shopkeeper's active-connection pointer are written in one transaction, so a
// reader never sees an ACTIVE connection without its pointer.
func (s *connectionService) AcceptConnection(ctx context.Context, dealerID, connectionID uuid.UUID) (*entity.Connection, error) {
	return s.transition(ctx, connectionID, entity.ConnectionActive, func(connection *entity.Connection) error {
		if connection.DealerID != dealerID {
			return domainerrors.ErrNotConnectionParty
		}

		return nil
	})
}

// RejectConnection transitions PENDING -> REJECTED. The shopkeeper pointer is
// never set for a PENDING connection, so no pointer write is needed.
func (s *connectionService) RejectConnection(ctx context.Context, dealerID, connectionID uuid.UUID) (*entity.Connection, error) {
	return s.transition(ctx, connectionID, entity.ConnectionRejected, func(connection *entity.Connection) error {
		if connection.DealerID != dealerID {
			return domainerrors.ErrNotConnectionParty
		}

		return nil
	})
}

// RevokeConnection transitions ACTIVE -> REVOKED and clears the shopkeeper's
// active pointer. Either party may revoke.
func (s *connectionService) RevokeConnection(ctx context.Context, callerID, connectionID uuid.UUID) (*entity.Connection, error) {
	return s.transition(ctx, connectionID, entity.ConnectionRevoked, func(connection *entity.Connection) error {
		if !connection.IsParty(callerID) {
			return domainerrors.ErrNotConnectionParty
		}

		return nil
	})
}

// transition runs a reload-revalidate-save loop. Every attempt re-reads the
// record, re-checks ownership and the state machine against the fresh state,
// and saves with a compare-and-swap on the version. A lost race restarts the
// loop; after maxSaveRetries lost races the conflict is surfaced.
func (s *connectionService) transition(ctx context.Context, connectionID uuid.UUID, target entity.ConnectionState, authorize func(*entity.Connection) error) (*entity.Connection, error) {
	for attempt := 0; attempt < s.maxSaveRetries; attempt++ {
		connection, err := s.connectionRepo.FindConnectionByID(ctx, connectionID)
		if err != nil {
			if errors.Is(err, repository.ErrConnectionNotFound) {
				return nil, domainerrors.ErrConnectionNotFound
			}

			return nil, domainerrors.NewStoreUnavailableError(err, "failed to load connection")
		}

		if err := authorize(connection); err != nil {
			return nil, err
		}

		if !connection.State.CanTransitionTo(target) {
			return nil, domainerrors.ErrInvalidStateTransition.WithDetails(
				fmt.Sprintf("cannot transition from %s to %s", connection.State, target))
		}

		expectedVersion := connection.Version
		connection.State = target
		connection.Version = expectedVersion + 1
		connection.UpdatedAt = time.Now()

		err = s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			if err := repoFactory.NewConnectionRepository().SaveConnection(ctx, connection, expectedVersion); err != nil {
				return err
			}

			switch target {
			case entity.ConnectionActive:
				return repoFactory.NewShopkeeperRepository().SetActiveConnection(ctx, connection.ShopkeeperID, &connection.ID)
			case entity.ConnectionRevoked:
				return repoFactory.NewShopkeeperRepository().SetActiveConnection(ctx, connection.ShopkeeperID, nil)
			default:
				return nil
			}
		})
		if err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			if errors.Is(err, repository.ErrConnectionNotFound) {
				return nil, domainerrors.ErrConnectionNotFound
			}

			return nil, domainerrors.NewStoreUnavailableError(err, "failed to save connection")
		}

		observability.ConnectionTransitionsTotal.WithLabelValues(target.String()).Inc()

		return connection, nil
	}

	observability.ConnectionConflictsTotal.Inc()

	return nil, domainerrors.ErrConnectionConflict.WithDetails(
		fmt.Sprintf("connection %s changed concurrently %d times", connectionID, s.maxSaveRetries))
}

// GetConnectionStatus returns the shopkeeper's live connection. The lookup
// scans for a live record rather than chasing the shopkeeper's pointer, so a
// pointer lagging behind a committed transition is never observable here.
func (s *connectionService) GetConnectionStatus(ctx context.Context, shopkeeperID uuid.UUID) (*entity.Connection, error) {
	if _, err := s.shopkeeperRepo.FindShopkeeperByID(ctx, shopkeeperID); err != nil {
		if errors.Is(err, repository.ErrShopkeeperNotFound) {
			return nil, domainerrors.ErrShopkeeperNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to load shopkeeper")
	}

	connection, err := s.connectionRepo.FindLiveConnectionByShopkeeper(ctx, shopkeeperID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to load connection")
	}

	return connection, nil
}

// ListDealerConnections returns the dealer's connection history, newest first.
func (s *connectionService) ListDealerConnections(ctx context.Context, dealerID uuid.UUID) ([]*entity.Connection, error) {
	if _, err := s.dealerRepo.FindDealerByID(ctx, dealerID); err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			return nil, domainerrors.ErrDealerNotFound
		}

		return nil, domainerrors.NewStoreUnavailableError(err, "failed to load dealer")
	}

	connections, err := s.connectionRepo.FindConnectionsByDealer(ctx, dealerID)
	if err != nil {
		return nil, domainerrors.NewStoreUnavailableError(err, "failed to list connections")
	}

	return connections, nil
}
