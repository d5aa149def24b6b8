package postgres

import (
	"context"

	"supplylink/internal/domain/entity"
	"supplylink/internal/domain/repository"
	"supplylink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dealerRepository implements the repository.DealerRepository interface.
type dealerRepository struct {
	db *gorm.DB
}

// NewDealerRepository is the constructor for dealerRepository.
func NewDealerRepository(db *gorm.DB) repository.DealerRepository {
	return &dealerRepository{
		db: db,
	}
}

// UpsertDealer creates the dealer record or updates it in place.
func (repo *dealerRepository) UpsertDealer(ctx context.Context, dealer *entity.Dealer) error {
	dealerM := fromDealerDomain(dealer)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "company_name", "location_name", "email", "phone",
				"latitude", "longitude", "is_active", "updated_at",
			}),
		}).
		Create(dealerM).Error; err != nil {
		return errors.Wrap(err, "failed to upsert dealer")
	}

	dealer.ID = dealerM.ID
	dealer.CreatedAt = dealerM.CreatedAt
	dealer.UpdatedAt = dealerM.UpdatedAt

	return nil
}

// FindDealerByID retrieves a dealer by its unique ID.
func (repo *dealerRepository) FindDealerByID(ctx context.Context, id uuid.UUID) (*entity.Dealer, error) {
	var dealerM model.DealerModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dealerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDealerNotFound
		}

		return nil, errors.Wrap(err, "failed to find dealer by ID")
	}

	return toDealerDomain(&dealerM), nil
}

// SetDealerActive flips the dealer's active flag.
func (repo *dealerRepository) SetDealerActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DealerModel{}).
		Where("id = ?", id).
		Update("is_active", active)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update dealer active flag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDealerNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toDealerDomain converts a GORM DealerModel to a domain Dealer entity.
func toDealerDomain(data *model.DealerModel) *entity.Dealer {
	if data == nil {
		return nil
	}

	return &entity.Dealer{
		ID:           data.ID,
		Name:         data.Name,
		CompanyName:  data.CompanyName,
		LocationName: data.LocationName,
		Email:        data.Email,
		Phone:        data.Phone,
		Position: entity.Position{
			Latitude:  data.Latitude,
			Longitude: data.Longitude,
		},
		IsActive:  data.IsActive,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromDealerDomain converts a domain Dealer entity to a GORM DealerModel.
func fromDealerDomain(data *entity.Dealer) *model.DealerModel {
	if data == nil {
		return nil
	}

	return &model.DealerModel{
		ID:           data.ID,
		Name:         data.Name,
		CompanyName:  data.CompanyName,
		LocationName: data.LocationName,
		Email:        data.Email,
		Phone:        data.Phone,
		Latitude:     data.Position.Latitude,
		Longitude:    data.Position.Longitude,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
