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

// shopkeeperRepository implements the repository.ShopkeeperRepository interface.
type shopkeeperRepository struct {
	db *gorm.DB
}

// NewShopkeeperRepository is the constructor for shopkeeperRepository.
func NewShopkeeperRepository(db *gorm.DB) repository.ShopkeeperRepository {
	return &shopkeeperRepository{
		db: db,
	}
}

// FindShopkeeperByID retrieves a shopkeeper by its unique ID.
func (repo *shopkeeperRepository) FindShopkeeperByID(ctx context.Context, id uuid.UUID) (*entity.Shopkeeper, error) {
	var shopkeeperM model.ShopkeeperModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&shopkeeperM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopkeeperNotFound
		}

		return nil, errors.Wrap(err, "failed to find shopkeeper by ID")
	}

	return toShopkeeperDomain(&shopkeeperM), nil
}

// SetActiveConnection updates the shopkeeper's active-connection pointer.
func (repo *shopkeeperRepository) SetActiveConnection(ctx context.Context, shopkeeperID uuid.UUID, connectionID *uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShopkeeperModel{}).
		Where("id = ?", shopkeeperID).
		Update("active_connection_id", connectionID)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update active connection")
	}

	if result.RowsAffected == 0 {
		return repository.ErrShopkeeperNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toShopkeeperDomain converts a GORM ShopkeeperModel to a domain Shopkeeper entity.
func toShopkeeperDomain(data *model.ShopkeeperModel) *entity.Shopkeeper {
	if data == nil {
		return nil
	}

	return &entity.Shopkeeper{
		ID:           data.ID,
		Name:         data.Name,
		ShopName:     data.ShopName,
		LocationName: data.LocationName,
		Position: entity.Position{
			Latitude:  data.Latitude,
			Longitude: data.Longitude,
		},
		ActiveConnectionID: data.ActiveConnectionID,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
