package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookforge/internal/models"
	"bookforge/internal/repository"
)

// MockGenerationRepository is a mock type for the GenerationRepository type
type MockGenerationRepository struct {
	mock.Mock
}

// GetOrCreate provides a mock function with given fields: ctx, bookConfigID, ownerID
func (_m *MockGenerationRepository) GetOrCreate(ctx context.Context, bookConfigID uuid.UUID, ownerID uuid.UUID) (*models.Generation, error) {
	ret := _m.Called(ctx, bookConfigID, ownerID)

	var r0 *models.Generation
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *models.Generation); ok {
		r0 = rf(ctx, bookConfigID, ownerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Generation)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, bookConfigID, ownerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockGenerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Generation, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Generation
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Generation); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Generation)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateProgress provides a mock function with given fields: ctx, id, currentStep, steps
func (_m *MockGenerationRepository) UpdateProgress(ctx context.Context, id uuid.UUID, currentStep int, steps models.StepsCompleted) error {
	ret := _m.Called(ctx, id, currentStep, steps)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, int, models.StepsCompleted) error); ok {
		r0 = rf(ctx, id, currentStep, steps)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockGenerationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockGenerationRepository creates a new instance of MockGenerationRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockGenerationRepository(t interface {
	mock.TestingT
	Helper()
}) *MockGenerationRepository {
	m := &MockGenerationRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.GenerationRepository = (*MockGenerationRepository)(nil)
