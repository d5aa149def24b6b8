package repository

import "context"

// RepositoryFactory creates repository instances bound to a single
// transaction. It is handed to the callback of TransactionManager.Execute.
type RepositoryFactory interface {
	NewConnectionRepository() ConnectionRepository
	NewShopkeeperRepository() ShopkeeperRepository
}

// TransactionManager runs a unit of work atomically. The connection registry
// uses it for transitions that touch both the connection record and the
// shopkeeper's active-connection pointer.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
