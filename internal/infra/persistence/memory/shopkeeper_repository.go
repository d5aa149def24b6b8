package memory

import (
	"context"
	"time"

	"supplylink/internal/domain/entity"
	"supplylink/internal/domain/repository"

	"github.com/google/uuid"
)

type shopkeeperRepository struct {
	store *Store
}

// NewShopkeeperRepository creates a shopkeeper repository backed by the store.
func NewShopkeeperRepository(store *Store) repository.ShopkeeperRepository {
	return &shopkeeperRepository{store: store}
}

func (r *shopkeeperRepository) FindShopkeeperByID(_ context.Context, id uuid.UUID) (*entity.Shopkeeper, error) {
	r.store.shopkeepersMu.RLock()
	defer r.store.shopkeepersMu.RUnlock()

	shopkeeper, ok := r.store.shopkeepers[id]
	if !ok {
		return nil, repository.ErrShopkeeperNotFound
	}

	return cloneShopkeeper(shopkeeper), nil
}

func (r *shopkeeperRepository) SetActiveConnection(_ context.Context, shopkeeperID uuid.UUID, connectionID *uuid.UUID) error {
	r.store.shopkeepersMu.Lock()
	defer r.store.shopkeepersMu.Unlock()

	shopkeeper, ok := r.store.shopkeepers[shopkeeperID]
	if !ok {
		return repository.ErrShopkeeperNotFound
	}

	if connectionID != nil {
		id := *connectionID
		shopkeeper.ActiveConnectionID = &id
	} else {
		shopkeeper.ActiveConnectionID = nil
	}
	shopkeeper.UpdatedAt = time.Now()

	return nil
}
