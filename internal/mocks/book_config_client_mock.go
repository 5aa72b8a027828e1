package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookforge/internal/client"
	"bookforge/internal/models"
)

// MockBookConfigClient is a mock type for the BookConfigClient type
type MockBookConfigClient struct {
	mock.Mock
}

// GetStoryContent provides a mock function with given fields: ctx, bookConfigID
func (_m *MockBookConfigClient) GetStoryContent(ctx context.Context, bookConfigID uuid.UUID) (*models.StoryContent, error) {
	ret := _m.Called(ctx, bookConfigID)

	var r0 *models.StoryContent
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.StoryContent); ok {
		r0 = rf(ctx, bookConfigID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.StoryContent)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, bookConfigID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetUploadedImageKeys provides a mock function with given fields: ctx, bookConfigID
func (_m *MockBookConfigClient) GetUploadedImageKeys(ctx context.Context, bookConfigID uuid.UUID) ([]string, error) {
	ret := _m.Called(ctx, bookConfigID)

	var r0 []string
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []string); ok {
		r0 = rf(ctx, bookConfigID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, bookConfigID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockBookConfigClient creates a new instance of MockBookConfigClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockBookConfigClient(t interface {
	mock.TestingT
	Helper()
}) *MockBookConfigClient {
	m := &MockBookConfigClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ client.BookConfigClient = (*MockBookConfigClient)(nil)
