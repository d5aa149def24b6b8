package repository

import (
	"context"

	"supplylink/internal/domain/entity"
	"supplylink/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for connection persistence.
var (
	// ErrConnectionNotFound is returned when a connection is not found.
	ErrConnectionNotFound = errors.New("connection not found")
	// ErrLiveConnectionExists is returned when creating a connection would
	// give the shopkeeper a second PENDING or ACTIVE connection.
	ErrLiveConnectionExists = errors.New("shopkeeper already has a live connection")
	// ErrVersionConflict is returned by SaveConnection when the record's
	// version no longer matches the expected prior version.
	ErrVersionConflict = errors.New("connection version conflict")
)

// ConnectionRepository defines the interface for connection-related database
// operations. Implementations must make CreateConnection atomic with respect
// to the one-live-connection-per-shopkeeper rule, and SaveConnection a
// compare-and-swap on the version field; both without any global lock.
type ConnectionRepository interface {
	// CreateConnection persists a new connection. Fails with
	// ErrLiveConnectionExists if the shopkeeper already has a connection in
	// a live state.
	CreateConnection(ctx context.Context, connection *entity.Connection) error

	// FindConnectionByID retrieves a connection by its unique ID.
	FindConnectionByID(ctx context.Context, id uuid.UUID) (*entity.Connection, error)

	// FindLiveConnectionByShopkeeper retrieves the shopkeeper's PENDING or
	// ACTIVE connection, if one exists.
	FindLiveConnectionByShopkeeper(ctx context.Context, shopkeeperID uuid.UUID) (*entity.Connection, error)

	// FindConnectionsByShopkeeper retrieves the shopkeeper's full connection
	// history, newest first.
	FindConnectionsByShopkeeper(ctx context.Context, shopkeeperID uuid.UUID) ([]*entity.Connection, error)

	// FindConnectionsByDealer retrieves the dealer's full connection history,
	// newest first.
	FindConnectionsByDealer(ctx context.Context, dealerID uuid.UUID) ([]*entity.Connection, error)

	// SaveConnection writes the connection's current state if and only if the
	// stored version equals expectedVersion, then increments the version.
	// Fails with ErrVersionConflict otherwise.
	SaveConnection(ctx context.Context, connection *entity.Connection, expectedVersion int64) error
}
