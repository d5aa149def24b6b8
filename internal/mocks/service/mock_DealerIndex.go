// Package mocks provides test doubles for the domain service ports.
package mocks

import (
	"context"

	"supplylink/internal/domain/entity"

	"github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"
)

// MockDealerIndex is a mock type for the DealerIndex interface.
type MockDealerIndex struct {
	mock.Mock
}

// Upsert provides a mock function with given fields: ctx, dealer
func (_m *MockDealerIndex) Upsert(ctx context.Context, dealer *entity.Dealer) error {
	ret := _m.Called(ctx, dealer)

	if len(ret) == 0 {
		panic("no return value specified for Upsert")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Dealer) error); ok {
		r0 = rf(ctx, dealer)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Remove provides a mock function with given fields: ctx, dealerID
func (_m *MockDealerIndex) Remove(ctx context.Context, dealerID uuid.UUID) error {
	ret := _m.Called(ctx, dealerID)

	if len(ret) == 0 {
		panic("no return value specified for Remove")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, dealerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// WithinRadius provides a mock function with given fields: ctx, center, radiusKm
func (_m *MockDealerIndex) WithinRadius(ctx context.Context, center entity.Position, radiusKm float64) ([]*entity.Dealer, error) {
	ret := _m.Called(ctx, center, radiusKm)

	if len(ret) == 0 {
		panic("no return value specified for WithinRadius")
	}

	var r0 []*entity.Dealer
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, entity.Position, float64) ([]*entity.Dealer, error)); ok {
		return rf(ctx, center, radiusKm)
	}
	if rf, ok := ret.Get(0).(func(context.Context, entity.Position, float64) []*entity.Dealer); ok {
		r0 = rf(ctx, center, radiusKm)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Dealer)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, entity.Position, float64) error); ok {
		r1 = rf(ctx, center, radiusKm)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockDealerIndex creates a new instance of MockDealerIndex.
func NewMockDealerIndex(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDealerIndex {
	mock := &MockDealerIndex{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
