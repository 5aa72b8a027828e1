package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookforge/internal/models"
	"bookforge/internal/repository"
)

// MockContentRepository is a mock type for the ContentRepository type
type MockContentRepository struct {
	mock.Mock
}

// GetCorrected provides a mock function with given fields: ctx, generationID
func (_m *MockContentRepository) GetCorrected(ctx context.Context, generationID uuid.UUID) (*models.CorrectedContent, error) {
	ret := _m.Called(ctx, generationID)

	var r0 *models.CorrectedContent
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.CorrectedContent); ok {
		r0 = rf(ctx, generationID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.CorrectedContent)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, generationID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpsertCorrected provides a mock function with given fields: ctx, content
func (_m *MockContentRepository) UpsertCorrected(ctx context.Context, content *models.CorrectedContent) error {
	ret := _m.Called(ctx, content)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.CorrectedContent) error); ok {
		r0 = rf(ctx, content)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetManual provides a mock function with given fields: ctx, generationID
func (_m *MockContentRepository) GetManual(ctx context.Context, generationID uuid.UUID) (*models.ManualEdit, error) {
	ret := _m.Called(ctx, generationID)

	var r0 *models.ManualEdit
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.ManualEdit); ok {
		r0 = rf(ctx, generationID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.ManualEdit)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, generationID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpsertManual provides a mock function with given fields: ctx, edit
func (_m *MockContentRepository) UpsertManual(ctx context.Context, edit *models.ManualEdit) error {
	ret := _m.Called(ctx, edit)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.ManualEdit) error); ok {
		r0 = rf(ctx, edit)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockContentRepository creates a new instance of MockContentRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockContentRepository(t interface {
	mock.TestingT
	Helper()
}) *MockContentRepository {
	m := &MockContentRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ContentRepository = (*MockContentRepository)(nil)
