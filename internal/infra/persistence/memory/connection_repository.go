package memory

import (
	"context"
	"sort"
	"strings"

	"supplylink/internal/domain/entity"
	"supplylink/internal/domain/repository"

	"github.com/google/uuid"
)

type connectionRepository struct {
	store *Store
}

// NewConnectionRepository creates a connection repository backed by the store.
func NewConnectionRepository(store *Store) repository.ConnectionRepository {
	return &connectionRepository{store: store}
}

// CreateConnection inserts a new connection. The per-shopkeeper mutex makes
// the live-connection check and the insert atomic for that shopkeeper while
// other shopkeepers proceed in parallel.
func (r *connectionRepository) CreateConnection(_ context.Context, connection *entity.Connection) error {
	unlock := r.store.shopkeeperLocks.lock(connection.ShopkeeperID)
	defer unlock()

	r.store.connectionsMu.Lock()
	defer r.store.connectionsMu.Unlock()

	if _, exists := r.store.liveConnections[connection.ShopkeeperID]; exists {
		return repository.ErrLiveConnectionExists
	}

	stored := cloneConnection(connection)
	r.store.connections[stored.ID] = stored
	r.store.liveConnections[stored.ShopkeeperID] = stored.ID

	return nil
}

func (r *connectionRepository) FindConnectionByID(_ context.Context, id uuid.UUID) (*entity.Connection, error) {
	r.store.connectionsMu.RLock()
	defer r.store.connectionsMu.RUnlock()

	connection, ok := r.store.connections[id]
	if !ok {
		return nil, repository.ErrConnectionNotFound
	}

	return cloneConnection(connection), nil
}

func (r *connectionRepository) FindLiveConnectionByShopkeeper(_ context.Context, shopkeeperID uuid.UUID) (*entity.Connection, error) {
	r.store.connectionsMu.RLock()
	defer r.store.connectionsMu.RUnlock()

	id, ok := r.store.liveConnections[shopkeeperID]
	if !ok {
		return nil, repository.ErrConnectionNotFound
	}

	return cloneConnection(r.store.connections[id]), nil
}

func (r *connectionRepository) FindConnectionsByShopkeeper(_ context.Context, shopkeeperID uuid.UUID) ([]*entity.Connection, error) {
	r.store.connectionsMu.RLock()
	defer r.store.connectionsMu.RUnlock()

	var connections []*entity.Connection
	for _, connection := range r.store.connections {
		if connection.ShopkeeperID == shopkeeperID {
			connections = append(connections, cloneConnection(connection))
		}
	}
	sortNewestFirst(connections)

	return connections, nil
}

func (r *connectionRepository) FindConnectionsByDealer(_ context.Context, dealerID uuid.UUID) ([]*entity.Connection, error) {
	r.store.connectionsMu.RLock()
	defer r.store.connectionsMu.RUnlock()

	var connections []*entity.Connection
	for _, connection := range r.store.connections {
		if connection.DealerID == dealerID {
			connections = append(connections, cloneConnection(connection))
		}
	}
	sortNewestFirst(connections)

	return connections, nil
}

// SaveConnection is a compare-and-swap on the version field. Updating the
// live-connection index here keeps it consistent with every committed
// transition.
func (r *connectionRepository) SaveConnection(_ context.Context, connection *entity.Connection, expectedVersion int64) error {
	r.store.connectionsMu.Lock()
	defer r.store.connectionsMu.Unlock()

	current, ok := r.store.connections[connection.ID]
	if !ok {
		return repository.ErrConnectionNotFound
	}
	if current.Version != expectedVersion {
		return repository.ErrVersionConflict
	}

	stored := cloneConnection(connection)
	stored.Version = expectedVersion + 1
	r.store.connections[stored.ID] = stored

	if stored.State.IsLive() {
		r.store.liveConnections[stored.ShopkeeperID] = stored.ID
	} else if liveID, exists := r.store.liveConnections[stored.ShopkeeperID]; exists && liveID == stored.ID {
		delete(r.store.liveConnections, stored.ShopkeeperID)
	}

	return nil
}

func sortNewestFirst(connections []*entity.Connection) {
	sort.SliceStable(connections, func(i, j int) bool {
		if !connections[i].CreatedAt.Equal(connections[j].CreatedAt) {
			return connections[i].CreatedAt.After(connections[j].CreatedAt)
		}

		return strings.Compare(connections[i].ID.String(), connections[j].ID.String()) < 0
	})
}
