package mocks

import (
	context "context"
	time "time"

	mock "github.com/stretchr/testify/mock"
)

// TokenStore is a mock type for the TokenStore type
type TokenStore struct {
	mock.Mock
}

// Revoke provides a mock function with given fields: ctx, tokenID, ttl
func (_m *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	ret := _m.Called(ctx, tokenID, ttl)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, time.Duration) error); ok {
		r0 = rf(ctx, tokenID, ttl)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// IsRevoked provides a mock function with given fields: ctx, tokenID
func (_m *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ret := _m.Called(ctx, tokenID)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, tokenID)
	} else {
		r0 = ret.Get(0).(bool)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, tokenID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewTokenStore creates a new instance of TokenStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenStore {
	m := &TokenStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
