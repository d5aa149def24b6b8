package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"supplylink/internal/domain/entity"
	"supplylink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingConnection(shopkeeperID, dealerID uuid.UUID) *entity.Connection {
	now := time.Now()

	return &entity.Connection{
		ID:           uuid.New(),
		ShopkeeperID: shopkeeperID,
		DealerID:     dealerID,
		State:        entity.ConnectionPending,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestConnectionRepository_CreateEnforcesOneLiveConnection(t *testing.T) {
	ctx := context.Background()
	repo := NewConnectionRepository(NewStore())

	shopkeeperID := uuid.New()
	first := newPendingConnection(shopkeeperID, uuid.New())
	second := newPendingConnection(shopkeeperID, uuid.New())

	require.NoError(t, repo.CreateConnection(ctx, first))
	err := repo.CreateConnection(ctx, second)
	require.ErrorIs(t, err, repository.ErrLiveConnectionExists)

	// A different shopkeeper is unaffected.
	other := newPendingConnection(uuid.New(), uuid.New())
	require.NoError(t, repo.CreateConnection(ctx, other))
}

func TestConnectionRepository_ConcurrentCreatesOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewConnectionRepository(NewStore())
	shopkeeperID := uuid.New()

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.CreateConnection(ctx, newPendingConnection(shopkeeperID, uuid.New()))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range results {
		if err == nil {
			created++
		} else {
			require.ErrorIs(t, err, repository.ErrLiveConnectionExists)
		}
	}
	assert.Equal(t, 1, created)
}

func TestConnectionRepository_SaveConnectionCAS(t *testing.T) {
	ctx := context.Background()
	repo := NewConnectionRepository(NewStore())

	connection := newPendingConnection(uuid.New(), uuid.New())
	require.NoError(t, repo.CreateConnection(ctx, connection))

	accepted := *connection
	accepted.State = entity.ConnectionActive
	accepted.Version = 2
	require.NoError(t, repo.SaveConnection(ctx, &accepted, 1))

	// A save against the stale version must lose.
	stale := *connection
	stale.State = entity.ConnectionRejected
	err := repo.SaveConnection(ctx, &stale, 1)
	require.ErrorIs(t, err, repository.ErrVersionConflict)

	got, err := repo.FindConnectionByID(ctx, connection.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionActive, got.State)
	assert.Equal(t, int64(2), got.Version)
}

func TestConnectionRepository_SaveConnectionNotFound(t *testing.T) {
	repo := NewConnectionRepository(NewStore())

	err := repo.SaveConnection(context.Background(), newPendingConnection(uuid.New(), uuid.New()), 1)
	require.ErrorIs(t, err, repository.ErrConnectionNotFound)
}

func TestConnectionRepository_LiveLookupTracksTransitions(t *testing.T) {
	ctx := context.Background()
	repo := NewConnectionRepository(NewStore())
	shopkeeperID := uuid.New()

	connection := newPendingConnection(shopkeeperID, uuid.New())
	require.NoError(t, repo.CreateConnection(ctx, connection))

	live, err := repo.FindLiveConnectionByShopkeeper(ctx, shopkeeperID)
	require.NoError(t, err)
	assert.Equal(t, connection.ID, live.ID)

	revoked := *connection
	revoked.State = entity.ConnectionRevoked
	revoked.Version = 2
	require.NoError(t, repo.SaveConnection(ctx, &revoked, 1))

	_, err = repo.FindLiveConnectionByShopkeeper(ctx, shopkeeperID)
	require.ErrorIs(t, err, repository.ErrConnectionNotFound)

	// The terminal record stays in the history.
	history, err := repo.FindConnectionsByShopkeeper(ctx, shopkeeperID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.ConnectionRevoked, history[0].State)

	// And a fresh request is possible again.
	require.NoError(t, repo.CreateConnection(ctx, newPendingConnection(shopkeeperID, uuid.New())))
}

func TestConnectionRepository_HistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewConnectionRepository(NewStore())
	dealerID := uuid.New()

	older := newPendingConnection(uuid.New(), dealerID)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := newPendingConnection(uuid.New(), dealerID)

	require.NoError(t, repo.CreateConnection(ctx, older))
	require.NoError(t, repo.CreateConnection(ctx, newer))

	history, err := repo.FindConnectionsByDealer(ctx, dealerID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, newer.ID, history[0].ID)
	assert.Equal(t, older.ID, history[1].ID)
}

func TestShopkeeperRepository_SetActiveConnection(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewShopkeeperRepository(store)

	shopkeeper := &entity.Shopkeeper{ID: uuid.New(), Name: "shop"}
	store.PutShopkeeper(shopkeeper)

	connectionID := uuid.New()
	require.NoError(t, repo.SetActiveConnection(ctx, shopkeeper.ID, &connectionID))

	got, err := repo.FindShopkeeperByID(ctx, shopkeeper.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ActiveConnectionID)
	assert.Equal(t, connectionID, *got.ActiveConnectionID)

	require.NoError(t, repo.SetActiveConnection(ctx, shopkeeper.ID, nil))
	got, err = repo.FindShopkeeperByID(ctx, shopkeeper.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ActiveConnectionID)

	err = repo.SetActiveConnection(ctx, uuid.New(), nil)
	require.ErrorIs(t, err, repository.ErrShopkeeperNotFound)
}
