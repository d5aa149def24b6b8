package postgres

import (
	"context"

	"supplylink/internal/domain/entity"
	"supplylink/internal/domain/repository"
	"supplylink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// connectionRepository implements the repository.ConnectionRepository interface.
type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository is the constructor for connectionRepository.
func NewConnectionRepository(db *gorm.DB) repository.ConnectionRepository {
	return &connectionRepository{
		db: db,
	}
}

// CreateConnection persists a new connection. The partial unique index on
// (shopkeeper_id) over live states turns a second concurrent request into a
// unique violation, which maps to ErrLiveConnectionExists.
func (repo *connectionRepository) CreateConnection(ctx context.Context, connection *entity.Connection) error {
	connectionM := fromConnectionDomain(connection)

	if err := repo.db.WithContext(ctx).Create(connectionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrLiveConnectionExists
		}

		return errors.Wrap(err, "failed to create connection")
	}

	connection.ID = connectionM.ID
	connection.CreatedAt = connectionM.CreatedAt
	connection.UpdatedAt = connectionM.UpdatedAt

	return nil
}

// FindConnectionByID retrieves a connection by its unique ID.
func (repo *connectionRepository) FindConnectionByID(ctx context.Context, id uuid.UUID) (*entity.Connection, error) {
	var connectionM model.ConnectionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&connectionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConnectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find connection by ID")
	}

	return toConnectionDomain(&connectionM), nil
}

// FindLiveConnectionByShopkeeper retrieves the shopkeeper's PENDING or ACTIVE connection.
func (repo *connectionRepository) FindLiveConnectionByShopkeeper(ctx context.Context, shopkeeperID uuid.UUID) (*entity.Connection, error) {
	var connectionM model.ConnectionModel

	if err := repo.db.WithContext(ctx).
		Where("shopkeeper_id = ? AND state IN ?", shopkeeperID,
			[]string{entity.ConnectionPending.String(), entity.ConnectionActive.String()}).
		First(&connectionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConnectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find live connection")
	}

	return toConnectionDomain(&connectionM), nil
}

// FindConnectionsByShopkeeper retrieves the shopkeeper's connection history, newest first.
func (repo *connectionRepository) FindConnectionsByShopkeeper(ctx context.Context, shopkeeperID uuid.UUID) ([]*entity.Connection, error) {
	var connectionModels []*model.ConnectionModel

	if err := repo.db.WithContext(ctx).
		Where("shopkeeper_id = ?", shopkeeperID).
		Order("created_at DESC").
		Find(&connectionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find connections by shopkeeper")
	}

	return toConnectionDomainList(connectionModels), nil
}

// FindConnectionsByDealer retrieves the dealer's connection history, newest first.
func (repo *connectionRepository) FindConnectionsByDealer(ctx context.Context, dealerID uuid.UUID) ([]*entity.Connection, error) {
	var connectionModels []*model.ConnectionModel

	if err := repo.db.WithContext(ctx).
		Where("dealer_id = ?", dealerID).
		Order("created_at DESC").
		Find(&connectionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find connections by dealer")
	}

	return toConnectionDomainList(connectionModels), nil
}

// SaveConnection writes the connection guarded by a version compare-and-swap.
// Zero rows affected means either a lost race or a missing record; a follow-up
// read tells the two apart.
func (repo *connectionRepository) SaveConnection(ctx context.Context, connection *entity.Connection, expectedVersion int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ConnectionModel{}).
		Where("id = ? AND version = ?", connection.ID, expectedVersion).
		Updates(map[string]any{
			"state":      connection.State.String(),
			"version":    expectedVersion + 1,
			"updated_at": connection.UpdatedAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save connection")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ConnectionModel{}).
			Where("id = ?", connection.ID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check connection existence")
		}
		if count == 0 {
			return repository.ErrConnectionNotFound
		}

		return repository.ErrVersionConflict
	}

	connection.Version = expectedVersion + 1

	return nil
}

// --- Mapper Functions ---

// toConnectionDomain converts a GORM ConnectionModel to a domain Connection entity.
func toConnectionDomain(data *model.ConnectionModel) *entity.Connection {
	if data == nil {
		return nil
	}

	return &entity.Connection{
		ID:           data.ID,
		ShopkeeperID: data.ShopkeeperID,
		DealerID:     data.DealerID,
		State:        entity.ConnectionState(data.State),
		Version:      data.Version,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toConnectionDomainList(models []*model.ConnectionModel) []*entity.Connection {
	connections := make([]*entity.Connection, 0, len(models))
	for _, connectionM := range models {
		connections = append(connections, toConnectionDomain(connectionM))
	}

	return connections
}

// fromConnectionDomain converts a domain Connection entity to a GORM ConnectionModel.
func fromConnectionDomain(data *entity.Connection) *model.ConnectionModel {
	if data == nil {
		return nil
	}

	return &model.ConnectionModel{
		ID:           data.ID,
		ShopkeeperID: data.ShopkeeperID,
		DealerID:     data.DealerID,
		State:        data.State.String(),
		Version:      data.Version,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
