package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookforge/internal/models"
	"bookforge/internal/repository"
)

// MockEntityRepository is a mock type for the EntityRepository type
type MockEntityRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, entity
func (_m *MockEntityRepository) Create(ctx context.Context, entity *models.Entity) error {
	ret := _m.Called(ctx, entity)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Entity) error); ok {
		r0 = rf(ctx, entity)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockEntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Entity, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Entity
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Entity); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Entity)
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

// ListByGeneration provides a mock function with given fields: ctx, generationID
func (_m *MockEntityRepository) ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.Entity, error) {
	ret := _m.Called(ctx, generationID)

	var r0 []models.Entity
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []models.Entity); ok {
		r0 = rf(ctx, generationID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Entity)
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

// Delete provides a mock function with given fields: ctx, id
func (_m *MockEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ReplaceExtracted provides a mock function with given fields: ctx, generationID, entities
func (_m *MockEntityRepository) ReplaceExtracted(ctx context.Context, generationID uuid.UUID, entities []models.Entity) ([]models.Entity, error) {
	ret := _m.Called(ctx, generationID, entities)

	var r0 []models.Entity
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []models.Entity) []models.Entity); ok {
		r0 = rf(ctx, generationID, entities)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Entity)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, []models.Entity) error); ok {
		r1 = rf(ctx, generationID, entities)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetMainCharacter provides a mock function with given fields: ctx, generationID
func (_m *MockEntityRepository) GetMainCharacter(ctx context.Context, generationID uuid.UUID) (*models.Entity, error) {
	ret := _m.Called(ctx, generationID)

	var r0 *models.Entity
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Entity); ok {
		r0 = rf(ctx, generationID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Entity)
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

// EnsureMainCharacter provides a mock function with given fields: ctx, generationID, name
func (_m *MockEntityRepository) EnsureMainCharacter(ctx context.Context, generationID uuid.UUID, name string) (*models.Entity, error) {
	ret := _m.Called(ctx, generationID, name)

	var r0 *models.Entity
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) *models.Entity); ok {
		r0 = rf(ctx, generationID, name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Entity)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, string) error); ok {
		r1 = rf(ctx, generationID, name)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockEntityRepository creates a new instance of MockEntityRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockEntityRepository(t interface {
	mock.TestingT
	Helper()
}) *MockEntityRepository {
	m := &MockEntityRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.EntityRepository = (*MockEntityRepository)(nil)
