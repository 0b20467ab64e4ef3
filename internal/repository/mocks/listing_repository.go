package mocks

import (
	context "context"

	domain "github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	repository "github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	mock "github.com/stretchr/testify/mock"
)

// ListingRepository is a mock type for the ListingRepository type
type ListingRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, listing, images
func (_m *ListingRepository) Create(ctx context.Context, listing *domain.Listing, images []domain.ListingImage) error {
	ret := _m.Called(ctx, listing, images)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Listing, []domain.ListingImage) error); ok {
		r0 = rf(ctx, listing, images)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *ListingRepository) FindByID(ctx context.Context, id uint) (*domain.Listing, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Listing
	if rf, ok := ret.Get(0).(func(context.Context, uint) *domain.Listing); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Listing)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uint) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update provides a mock function with given fields: ctx, listing, newImages
func (_m *ListingRepository) Update(ctx context.Context, listing *domain.Listing, newImages []domain.ListingImage) error {
	ret := _m.Called(ctx, listing, newImages)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Listing, []domain.ListingImage) error); ok {
		r0 = rf(ctx, listing, newImages)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Delete provides a mock function with given fields: ctx, id
func (_m *ListingRepository) Delete(ctx context.Context, id uint) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uint) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// IncrementViews provides a mock function with given fields: ctx, id
func (_m *ListingRepository) IncrementViews(ctx context.Context, id uint) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uint) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ToggleActive provides a mock function with given fields: ctx, id
func (_m *ListingRepository) ToggleActive(ctx context.Context, id uint) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uint) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SetActiveMany provides a mock function with given fields: ctx, ids, active
func (_m *ListingRepository) SetActiveMany(ctx context.Context, ids []uint, active bool) (int64, error) {
	ret := _m.Called(ctx, ids, active)

	var r0 int64
	if rf, ok := ret.Get(0).(func(context.Context, []uint, bool) int64); ok {
		r0 = rf(ctx, ids, active)
	} else {
		r0 = ret.Get(0).(int64)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, []uint, bool) error); ok {
		r1 = rf(ctx, ids, active)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx, filter
func (_m *ListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []domain.Listing
	if rf, ok := ret.Get(0).(func(context.Context, repository.ListingFilter) []domain.Listing); ok {
		r0 = rf(ctx, filter)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Listing)
	}

	var r1 int64
	if rf, ok := ret.Get(1).(func(context.Context, repository.ListingFilter) int64); ok {
		r1 = rf(ctx, filter)
	} else {
		r1 = ret.Get(1).(int64)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, repository.ListingFilter) error); ok {
		r2 = rf(ctx, filter)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// Stats provides a mock function with given fields: ctx
func (_m *ListingRepository) Stats(ctx context.Context) (*repository.ListingStats, error) {
	ret := _m.Called(ctx)

	var r0 *repository.ListingStats
	if rf, ok := ret.Get(0).(func(context.Context) *repository.ListingStats); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*repository.ListingStats)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ReplaceImages provides a mock function with given fields: ctx, listingID, images
func (_m *ListingRepository) ReplaceImages(ctx context.Context, listingID uint, images []domain.ListingImage) error {
	ret := _m.Called(ctx, listingID, images)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uint, []domain.ListingImage) error); ok {
		r0 = rf(ctx, listingID, images)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListImages provides a mock function with given fields: ctx, listingID, limit, offset
func (_m *ListingRepository) ListImages(ctx context.Context, listingID uint, limit int, offset int) ([]repository.ImageRow, int64, error) {
	ret := _m.Called(ctx, listingID, limit, offset)

	var r0 []repository.ImageRow
	if rf, ok := ret.Get(0).(func(context.Context, uint, int, int) []repository.ImageRow); ok {
		r0 = rf(ctx, listingID, limit, offset)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]repository.ImageRow)
	}

	var r1 int64
	if rf, ok := ret.Get(1).(func(context.Context, uint, int, int) int64); ok {
		r1 = rf(ctx, listingID, limit, offset)
	} else {
		r1 = ret.Get(1).(int64)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, uint, int, int) error); ok {
		r2 = rf(ctx, listingID, limit, offset)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewListingRepository creates a new instance of ListingRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewListingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ListingRepository {
	m := &ListingRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
