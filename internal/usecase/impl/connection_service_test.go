package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"supplylink/config"
	"supplylink/internal/domain/entity"
	domainerrors "supplylink/internal/domain/errors"
	"supplylink/internal/infra/persistence/memory"
	"supplylink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registryFixture wires a connection service against the real in-memory
// store, so the concurrency behavior under test is the real thing, not a
// scripted mock.
type registryFixture struct {
	service usecase.ConnectionUsecase
	store   *memory.Store
}

func newRegistryFixture(t *testing.T) *registryFixture {
	t.Helper()

	store := memory.NewStore()

	return &registryFixture{
		store: store,
		service: NewConnectionService(ConnectionServiceParams{
			ConnectionRepo: memory.NewConnectionRepository(store),
			ShopkeeperRepo: memory.NewShopkeeperRepository(store),
			DealerRepo:     memory.NewDealerRepository(store),
			TxManager:      memory.NewTransactionManager(store),
			Config: &config.Config{
				Connection: &config.ConnectionConfig{MaxSaveRetries: 3},
			},
		}),
	}
}

func (f *registryFixture) seedShopkeeper(t *testing.T) uuid.UUID {
	t.Helper()

	shopkeeper := &entity.Shopkeeper{
		ID:       uuid.New(),
		Name:     "shopkeeper",
		ShopName: "corner shop",
		Position: entity.Position{Latitude: 40.7128, Longitude: -74.0060},
	}
	f.store.PutShopkeeper(shopkeeper)

	return shopkeeper.ID
}

func (f *registryFixture) seedDealer(t *testing.T, active bool) uuid.UUID {
	t.Helper()

	now := time.Now()
	dealer := &entity.Dealer{
		ID:        uuid.New(),
		Name:      "dealer",
		Position:  entity.Position{Latitude: 40.6782, Longitude: -73.9442},
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, memory.NewDealerRepository(f.store).UpsertDealer(context.Background(), dealer))

	return dealer.ID
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}

func TestConnectionService_FullLifecycle(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	dealerID := fixture.seedDealer(t, true)

	// Request: PENDING, visible as the shopkeeper's live connection.
	connection, err := fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionPending, connection.State)

	status, err := fixture.service.GetConnectionStatus(ctx, shopkeeperID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, connection.ID, status.ID)

	// Accept: ACTIVE, pointer set.
	accepted, err := fixture.service.AcceptConnection(ctx, dealerID, connection.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionActive, accepted.State)

	shopkeeper, err := memory.NewShopkeeperRepository(fixture.store).FindShopkeeperByID(ctx, shopkeeperID)
	require.NoError(t, err)
	require.NotNil(t, shopkeeper.ActiveConnectionID)
	assert.Equal(t, connection.ID, *shopkeeper.ActiveConnectionID)

	// Revoke by the shopkeeper: REVOKED, pointer cleared, status empty.
	revoked, err := fixture.service.RevokeConnection(ctx, shopkeeperID, connection.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionRevoked, revoked.State)

	shopkeeper, err = memory.NewShopkeeperRepository(fixture.store).FindShopkeeperByID(ctx, shopkeeperID)
	require.NoError(t, err)
	assert.Nil(t, shopkeeper.ActiveConnectionID)

	status, err = fixture.service.GetConnectionStatus(ctx, shopkeeperID)
	require.NoError(t, err)
	assert.Nil(t, status)

	// The terminal record stays; a fresh request works again.
	history, err := fixture.service.ListDealerConnections(ctx, dealerID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.ConnectionRevoked, history[0].State)

	_, err = fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)
}

func TestConnectionService_SecondRequestConflicts(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	dealerID := fixture.seedDealer(t, true)
	otherDealerID := fixture.seedDealer(t, true)

	_, err := fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)

	_, err = fixture.service.RequestConnection(ctx, shopkeeperID, otherDealerID)
	assertErrorCode(t, err, "CONNECTION_CONFLICT")
}

func TestConnectionService_RejectAllowsReRequest(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	dealerID := fixture.seedDealer(t, true)

	connection, err := fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)

	rejected, err := fixture.service.RejectConnection(ctx, dealerID, connection.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConnectionRejected, rejected.State)

	status, err := fixture.service.GetConnectionStatus(ctx, shopkeeperID)
	require.NoError(t, err)
	assert.Nil(t, status)

	_, err = fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)
}

func TestConnectionService_RequestValidation(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	inactiveDealerID := fixture.seedDealer(t, false)

	_, err := fixture.service.RequestConnection(ctx, shopkeeperID, inactiveDealerID)
	assertErrorCode(t, err, "DEALER_INACTIVE")

	_, err = fixture.service.RequestConnection(ctx, shopkeeperID, uuid.New())
	assertErrorCode(t, err, "DEALER_NOT_FOUND")

	_, err = fixture.service.RequestConnection(ctx, uuid.New(), inactiveDealerID)
	assertErrorCode(t, err, "SHOPKEEPER_NOT_FOUND")
}

func TestConnectionService_OwnershipChecks(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	dealerID := fixture.seedDealer(t, true)
	strangerID := uuid.New()

	connection, err := fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)

	_, err = fixture.service.AcceptConnection(ctx, strangerID, connection.ID)
	assertErrorCode(t, err, "CONNECTION_OWNERSHIP_VIOLATION")

	_, err = fixture.service.RejectConnection(ctx, strangerID, connection.ID)
	assertErrorCode(t, err, "CONNECTION_OWNERSHIP_VIOLATION")

	_, err = fixture.service.AcceptConnection(ctx, dealerID, connection.ID)
	require.NoError(t, err)

	_, err = fixture.service.RevokeConnection(ctx, strangerID, connection.ID)
	assertErrorCode(t, err, "CONNECTION_OWNERSHIP_VIOLATION")
}

func TestConnectionService_InvalidTransitions(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	dealerID := fixture.seedDealer(t, true)

	connection, err := fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)

	// PENDING cannot be revoked.
	_, err = fixture.service.RevokeConnection(ctx, shopkeeperID, connection.ID)
	assertErrorCode(t, err, "INVALID_STATE_TRANSITION")

	_, err = fixture.service.AcceptConnection(ctx, dealerID, connection.ID)
	require.NoError(t, err)

	// ACTIVE cannot be accepted or rejected again.
	_, err = fixture.service.AcceptConnection(ctx, dealerID, connection.ID)
	assertErrorCode(t, err, "INVALID_STATE_TRANSITION")
	_, err = fixture.service.RejectConnection(ctx, dealerID, connection.ID)
	assertErrorCode(t, err, "INVALID_STATE_TRANSITION")

	_, err = fixture.service.RevokeConnection(ctx, dealerID, connection.ID)
	require.NoError(t, err)

	// REVOKED is terminal.
	_, err = fixture.service.AcceptConnection(ctx, dealerID, connection.ID)
	assertErrorCode(t, err, "INVALID_STATE_TRANSITION")
	_, err = fixture.service.RevokeConnection(ctx, dealerID, connection.ID)
	assertErrorCode(t, err, "INVALID_STATE_TRANSITION")
}

func TestConnectionService_UnknownConnection(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	dealerID := fixture.seedDealer(t, true)

	_, err := fixture.service.AcceptConnection(ctx, dealerID, uuid.New())
	assertErrorCode(t, err, "CONNECTION_NOT_FOUND")
}

func TestConnectionService_ConcurrentRequestsOnePending(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)

	const attempts = 8
	dealerIDs := make([]uuid.UUID, attempts)
	for i := range dealerIDs {
		dealerIDs[i] = fixture.seedDealer(t, true)
	}

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = fixture.service.RequestConnection(ctx, shopkeeperID, dealerIDs[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assertErrorCode(t, err, "CONNECTION_CONFLICT")
		}
	}
	assert.Equal(t, 1, succeeded)

	status, err := fixture.service.GetConnectionStatus(ctx, shopkeeperID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, entity.ConnectionPending, status.State)
}

func TestConnectionService_ConcurrentAcceptsOneWinner(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	dealerID := fixture.seedDealer(t, true)

	connection, err := fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = fixture.service.AcceptConnection(ctx, dealerID, connection.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	status, err := fixture.service.GetConnectionStatus(ctx, shopkeeperID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, entity.ConnectionActive, status.State)
}

func TestConnectionService_ConcurrentAcceptAndReject(t *testing.T) {
	fixture := newRegistryFixture(t)
	ctx := context.Background()
	shopkeeperID := fixture.seedShopkeeper(t)
	dealerID := fixture.seedDealer(t, true)

	connection, err := fixture.service.RequestConnection(ctx, shopkeeperID, dealerID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var acceptErr, rejectErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, acceptErr = fixture.service.AcceptConnection(ctx, dealerID, connection.ID)
	}()
	go func() {
		defer wg.Done()
		_, rejectErr = fixture.service.RejectConnection(ctx, dealerID, connection.ID)
	}()
	wg.Wait()

	// Exactly one of the two transitions wins.
	if acceptErr == nil {
		assertErrorCode(t, rejectErr, "INVALID_STATE_TRANSITION")
	} else {
		require.NoError(t, rejectErr)
		assertErrorCode(t, acceptErr, "INVALID_STATE_TRANSITION")
	}

	final, err := memory.NewConnectionRepository(fixture.store).FindConnectionByID(ctx, connection.ID)
	require.NoError(t, err)
	assert.Contains(t, []entity.ConnectionState{entity.ConnectionActive, entity.ConnectionRejected}, final.State)
}
