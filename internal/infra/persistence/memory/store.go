// Package memory provides in-process implementations of the persistence
// ports, used for tests and single-node deployments.
package memory

import (
	"sync"

	"supplylink/internal/domain/entity"

	"github.com/google/uuid"
)

// Store holds all in-memory state. Each record family has its own lock, and
// connection creation is additionally serialized per shopkeeper, so unrelated
// shopkeepers never contend on anything beyond O(1) map operations.
type Store struct {
	dealersMu sync.RWMutex
	dealers   map[uuid.UUID]*entity.Dealer

	shopkeepersMu sync.RWMutex
	shopkeepers   map[uuid.UUID]*entity.Shopkeeper

	connectionsMu sync.RWMutex
	connections   map[uuid.UUID]*entity.Connection
	// liveConnections maps a shopkeeper to its single PENDING or ACTIVE
	// connection. Maintained on every create and save so the
	// one-live-connection check never scans the whole connection map.
	liveConnections map[uuid.UUID]uuid.UUID

	shopkeeperLocks keyedMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		dealers:         make(map[uuid.UUID]*entity.Dealer),
		shopkeepers:     make(map[uuid.UUID]*entity.Shopkeeper),
		connections:     make(map[uuid.UUID]*entity.Connection),
		liveConnections: make(map[uuid.UUID]uuid.UUID),
	}
}

// PutShopkeeper inserts or replaces a shopkeeper record. Shopkeeper
// registration lives in the external account system, so the repository port
// has no create method; this is the store-level entry point for bootstrap
// and tests.
func (s *Store) PutShopkeeper(shopkeeper *entity.Shopkeeper) {
	s.shopkeepersMu.Lock()
	defer s.shopkeepersMu.Unlock()

	s.shopkeepers[shopkeeper.ID] = cloneShopkeeper(shopkeeper)
}

// keyedMutex hands out one mutex per key, lazily.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) lock(key uuid.UUID) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[uuid.UUID]*sync.Mutex)
	}
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

// Entities are cloned on every read and write so callers never share memory
// with the store.

func cloneDealer(dealer *entity.Dealer) *entity.Dealer {
	clone := *dealer

	return &clone
}

func cloneShopkeeper(shopkeeper *entity.Shopkeeper) *entity.Shopkeeper {
	clone := *shopkeeper
	if shopkeeper.ActiveConnectionID != nil {
		id := *shopkeeper.ActiveConnectionID
		clone.ActiveConnectionID = &id
	}

	return &clone
}

func cloneConnection(connection *entity.Connection) *entity.Connection {
	clone := *connection

	return &clone
}
