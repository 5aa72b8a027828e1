package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookforge/internal/service"
)

// MockImageClient is a mock type for the ImageClient type
type MockImageClient struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, prompt, referenceImages
func (_m *MockImageClient) Generate(ctx context.Context, prompt string, referenceImages [][]byte) ([]byte, error) {
	ret := _m.Called(ctx, prompt, referenceImages)

	var r0 []byte
	if rf, ok := ret.Get(0).(func(context.Context, string, [][]byte) []byte); ok {
		r0 = rf(ctx, prompt, referenceImages)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, [][]byte) error); ok {
		r1 = rf(ctx, prompt, referenceImages)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockImageClient creates a new instance of MockImageClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockImageClient(t interface {
	mock.TestingT
	Helper()
}) *MockImageClient {
	m := &MockImageClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.ImageClient = (*MockImageClient)(nil)
