package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bookforge/internal/storage"
)

// MockArtifactStore is a mock type for the ArtifactStore type
type MockArtifactStore struct {
	mock.Mock
}

// Upload provides a mock function with given fields: ctx, key, data, contentType
func (_m *MockArtifactStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ret := _m.Called(ctx, key, data, contentType)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []byte, string) error); ok {
		r0 = rf(ctx, key, data, contentType)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Download provides a mock function with given fields: ctx, key
func (_m *MockArtifactStore) Download(ctx context.Context, key string) ([]byte, error) {
	ret := _m.Called(ctx, key)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(context.Context, string) []byte); ok {
		r0 = rf(ctx, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, keys
func (_m *MockArtifactStore) Delete(ctx context.Context, keys ...string) error {
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

// SignedURL provides a mock function with given fields: ctx, key, expiresIn
func (_m *MockArtifactStore) SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	ret := _m.Called(ctx, key, expiresIn)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, time.Duration) string); ok {
		r0 = rf(ctx, key, expiresIn)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, time.Duration) error); ok {
		r1 = rf(ctx, key, expiresIn)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockArtifactStore creates a new instance of MockArtifactStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockArtifactStore(t interface {
	mock.TestingT
	Helper()
}) *MockArtifactStore {
	m := &MockArtifactStore{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ storage.ArtifactStore = (*MockArtifactStore)(nil)
