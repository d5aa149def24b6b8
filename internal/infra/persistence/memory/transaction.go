package memory

import (
	"context"

	"supplylink/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager over the store.
// Writes apply immediately; the version compare-and-swap on the connection
// record is the serialization point, and status reads go through the
// live-connection scan rather than the shopkeeper pointer, so a pair of
// writes in flight is never observable as an inconsistent state.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (m *transactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(&repositoryFactory{store: m.store})
}

type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) NewConnectionRepository() repository.ConnectionRepository {
	return NewConnectionRepository(f.store)
}

func (f *repositoryFactory) NewShopkeeperRepository() repository.ShopkeeperRepository {
	return NewShopkeeperRepository(f.store)
}
