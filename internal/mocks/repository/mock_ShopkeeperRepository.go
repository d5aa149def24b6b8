// Package mocks provides test doubles for the repository ports.
package mocks

import (
	"context"

	"supplylink/internal/domain/entity"

	"github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockShopkeeperRepository is a mock type for the ShopkeeperRepository interface.
type MockShopkeeperRepository struct {
	mock.Mock
}

// FindShopkeeperByID provides a mock function with given fields: ctx, id
func (_m *MockShopkeeperRepository) FindShopkeeperByID(ctx context.Context, id uuid.UUID) (*entity.Shopkeeper, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for FindShopkeeperByID")
	}

	var r0 *entity.Shopkeeper
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*entity.Shopkeeper, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *entity.Shopkeeper); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Shopkeeper)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SetActiveConnection provides a mock function with given fields: ctx, shopkeeperID, connectionID
func (_m *MockShopkeeperRepository) SetActiveConnection(ctx context.Context, shopkeeperID uuid.UUID, connectionID *uuid.UUID) error {
	ret := _m.Called(ctx, shopkeeperID, connectionID)

	if len(ret) == 0 {
		panic("no return value specified for SetActiveConnection")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, *uuid.UUID) error); ok {
		r0 = rf(ctx, shopkeeperID, connectionID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockShopkeeperRepository creates a new instance of MockShopkeeperRepository.
func NewMockShopkeeperRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockShopkeeperRepository {
	mock := &MockShopkeeperRepository{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
