package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookforge/internal/models"
	"bookforge/internal/repository"
)

// MockArtifactRepository is a mock type for the ArtifactRepository type
type MockArtifactRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, artifact
func (_m *MockArtifactRepository) Create(ctx context.Context, artifact *models.Artifact) error {
	ret := _m.Called(ctx, artifact)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Artifact) error); ok {
		r0 = rf(ctx, artifact)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockArtifactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Artifact, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Artifact
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Artifact); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Artifact)
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

// ListBySubject provides a mock function with given fields: ctx, subject
func (_m *MockArtifactRepository) ListBySubject(ctx context.Context, subject models.Subject) ([]models.Artifact, error) {
	ret := _m.Called(ctx, subject)

	var r0 []models.Artifact
	if rf, ok := ret.Get(0).(func(context.Context, models.Subject) []models.Artifact); ok {
		r0 = rf(ctx, subject)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Artifact)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, models.Subject) error); ok {
		r1 = rf(ctx, subject)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListByGeneration provides a mock function with given fields: ctx, generationID
func (_m *MockArtifactRepository) ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.Artifact, error) {
	ret := _m.Called(ctx, generationID)

	var r0 []models.Artifact
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []models.Artifact); ok {
		r0 = rf(ctx, generationID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.Artifact)
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

// GetSelected provides a mock function with given fields: ctx, subject
func (_m *MockArtifactRepository) GetSelected(ctx context.Context, subject models.Subject) (*models.Artifact, error) {
	ret := _m.Called(ctx, subject)

	var r0 *models.Artifact
	if rf, ok := ret.Get(0).(func(context.Context, models.Subject) *models.Artifact); ok {
		r0 = rf(ctx, subject)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Artifact)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, models.Subject) error); ok {
		r1 = rf(ctx, subject)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Select provides a mock function with given fields: ctx, id
func (_m *MockArtifactRepository) Select(ctx context.Context, id uuid.UUID) (*models.Artifact, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Artifact
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Artifact); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Artifact)
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

// Delete provides a mock function with given fields: ctx, id
func (_m *MockArtifactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockArtifactRepository creates a new instance of MockArtifactRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockArtifactRepository(t interface {
	mock.TestingT
	Helper()
}) *MockArtifactRepository {
	m := &MockArtifactRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ArtifactRepository = (*MockArtifactRepository)(nil)
