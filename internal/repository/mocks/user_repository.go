package mocks

import (
	context "context"

	domain "github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	repository "github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	mock "github.com/stretchr/testify/mock"
)

// UserRepository is a mock type for the UserRepository type
type UserRepository struct {
	mock.Mock
}

// CreateWithProfile provides a mock function with given fields: ctx, user, profile
func (_m *UserRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	ret := _m.Called(ctx, user, profile)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.User, *domain.Profile) error); ok {
		r0 = rf(ctx, user, profile)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindByUsername provides a mock function with given fields: ctx, username
func (_m *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ret := _m.Called(ctx, username)

	var r0 *domain.User
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.User); ok {
		r0 = rf(ctx, username)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, username)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.User
	if rf, ok := ret.Get(0).(func(context.Context, uint) *domain.User); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uint) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateAccount provides a mock function with given fields: ctx, user, profile
func (_m *UserRepository) UpdateAccount(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	ret := _m.Called(ctx, user, profile)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.User, *domain.Profile) error); ok {
		r0 = rf(ctx, user, profile)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListProfiles provides a mock function with given fields: ctx, filter
func (_m *UserRepository) ListProfiles(ctx context.Context, filter repository.ProfileFilter) ([]domain.Profile, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []domain.Profile
	if rf, ok := ret.Get(0).(func(context.Context, repository.ProfileFilter) []domain.Profile); ok {
		r0 = rf(ctx, filter)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Profile)
	}

	var r1 int64
	if rf, ok := ret.Get(1).(func(context.Context, repository.ProfileFilter) int64); ok {
		r1 = rf(ctx, filter)
	} else {
		r1 = ret.Get(1).(int64)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, repository.ProfileFilter) error); ok {
		r2 = rf(ctx, filter)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewUserRepository creates a new instance of UserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
