package memory

import (
	"context"
	"time"

	"supplylink/internal/domain/entity"
	"supplylink/internal/domain/repository"

	"github.com/google/uuid"
)

type dealerRepository struct {
	store *Store
}

// NewDealerRepository creates a dealer repository backed by the store.
func NewDealerRepository(store *Store) repository.DealerRepository {
	return &dealerRepository{store: store}
}

func (r *dealerRepository) UpsertDealer(_ context.Context, dealer *entity.Dealer) error {
	r.store.dealersMu.Lock()
	defer r.store.dealersMu.Unlock()

	r.store.dealers[dealer.ID] = cloneDealer(dealer)

	return nil
}

func (r *dealerRepository) FindDealerByID(_ context.Context, id uuid.UUID) (*entity.Dealer, error) {
	r.store.dealersMu.RLock()
	defer r.store.dealersMu.RUnlock()

	dealer, ok := r.store.dealers[id]
	if !ok {
		return nil, repository.ErrDealerNotFound
	}

	return cloneDealer(dealer), nil
}

func (r *dealerRepository) SetDealerActive(_ context.Context, id uuid.UUID, active bool) error {
	r.store.dealersMu.Lock()
	defer r.store.dealersMu.Unlock()

	dealer, ok := r.store.dealers[id]
	if !ok {
		return repository.ErrDealerNotFound
	}

	dealer.IsActive = active
	dealer.UpdatedAt = time.Now()

	return nil
}
