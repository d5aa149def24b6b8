package mocks

import (
	"context"

	"supplylink/internal/domain/entity"

	"github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockDealerRepository is a mock type for the DealerRepository interface.
type MockDealerRepository struct {
	mock.Mock
}

// UpsertDealer provides a mock function with given fields: ctx, dealer
func (_m *MockDealerRepository) UpsertDealer(ctx context.Context, dealer *entity.Dealer) error {
	ret := _m.Called(ctx, dealer)

	if len(ret) == 0 {
		panic("no return value specified for UpsertDealer")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Dealer) error); ok {
		r0 = rf(ctx, dealer)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindDealerByID provides a mock function with given fields: ctx, id
func (_m *MockDealerRepository) FindDealerByID(ctx context.Context, id uuid.UUID) (*entity.Dealer, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for FindDealerByID")
	}

	var r0 *entity.Dealer
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*entity.Dealer, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *entity.Dealer); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Dealer)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SetDealerActive provides a mock function with given fields: ctx, id, active
func (_m *MockDealerRepository) SetDealerActive(ctx context.Context, id uuid.UUID, active bool) error {
	ret := _m.Called(ctx, id, active)

	if len(ret) == 0 {
		panic("no return value specified for SetDealerActive")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, bool) error); ok {
		r0 = rf(ctx, id, active)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockDealerRepository creates a new instance of MockDealerRepository.
func NewMockDealerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDealerRepository {
	mock := &MockDealerRepository{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
