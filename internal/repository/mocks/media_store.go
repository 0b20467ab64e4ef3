package mocks

import (
	context "context"

	repository "github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	mock "github.com/stretchr/testify/mock"
)

// MediaStore is a mock type for the MediaStore type
type MediaStore struct {
	mock.Mock
}

// PresignUpload provides a mock function with given fields: ctx, key, contentType
func (_m *MediaStore) PresignUpload(ctx context.Context, key string, contentType string) (*repository.PresignedUpload, error) {
	ret := _m.Called(ctx, key, contentType)

	var r0 *repository.PresignedUpload
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *repository.PresignedUpload); ok {
		r0 = rf(ctx, key, contentType)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*repository.PresignedUpload)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, key, contentType)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// KeyFromRef provides a mock function with given fields: ref
func (_m *MediaStore) KeyFromRef(ref string) (string, bool) {
	ret := _m.Called(ref)

	var r0 string
	if rf, ok := ret.Get(0).(func(string) string); ok {
		r0 = rf(ref)
	} else {
		r0 = ret.Get(0).(string)
	}

	var r1 bool
	if rf, ok := ret.Get(1).(func(string) bool); ok {
		r1 = rf(ref)
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, keys
func (_m *MediaStore) Delete(ctx context.Context, keys ...string) error {
	_va := make([]interface{}, len(keys))
	for _i := range keys {
		_va[_i] = keys[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, ctx)
	_ca = append(_ca, _va...)
	ret := _m.Called(_ca...)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, ...string) error); ok {
		r0 = rf(ctx, keys...)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMediaStore creates a new instance of MediaStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMediaStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MediaStore {
	m := &MediaStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
