package usecase

import (
	"context"

	"supplylink/internal/domain/entity"

	"github.com/google/uuid"
)

// ConnectionUsecase is the registry governing shopkeeper-dealer connection
// lifecycles. All transitions are linearizable per connection, and request
// and accept are serialized per shopkeeper; independent shopkeepers never
// block each other.
type ConnectionUsecase interface {
	// RequestConnection creates a PENDING connection from the shopkeeper to
	// the dealer. Fails with a conflict if the shopkeeper already has a
	// PENDING or ACTIVE connection.
	RequestConnection(ctx context.Context, shopkeeperID, dealerID uuid.UUID) (*entity.Connection, error)

	// AcceptConnection transitions PENDING -> ACTIVE and records the
	// connection as the shopkeeper's active one. Only the dealer party may
	// accept.
	AcceptConnection(ctx context.Context, dealerID, connectionID uuid.UUID) (*entity.Connection, error)

	// RejectConnection transitions PENDING -> REJECTED. Only the dealer
	// party may reject.
	RejectConnection(ctx context.Context, dealerID, connectionID uuid.UUID) (*entity.Connection, error)

	// RevokeConnection transitions ACTIVE -> REVOKED and clears the
	// shopkeeper's active pointer. Either party may revoke.
	RevokeConnection(ctx context.Context, callerID, connectionID uuid.UUID) (*entity.Connection, error)

	// GetConnectionStatus returns the shopkeeper's live (PENDING or ACTIVE)
	// connection, or nil when there is none.
	GetConnectionStatus(ctx context.Context, shopkeeperID uuid.UUID) (*entity.Connection, error)

	// ListDealerConnections returns the dealer's connection history, newest
	// first, including terminal records.
	ListDealerConnections(ctx context.Context, dealerID uuid.UUID) ([]*entity.Connection, error)
}
