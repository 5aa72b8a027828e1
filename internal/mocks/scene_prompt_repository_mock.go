package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bookforge/internal/models"
	"bookforge/internal/repository"
)

// MockScenePromptRepository is a mock type for the ScenePromptRepository type
type MockScenePromptRepository struct {
	mock.Mock
}

// Replace provides a mock function with given fields: ctx, generationID, prompts
func (_m *MockScenePromptRepository) Replace(ctx context.Context, generationID uuid.UUID, prompts []models.ScenePrompt) ([]models.ScenePrompt, error) {
	ret := _m.Called(ctx, generationID, prompts)

	var r0 []models.ScenePrompt
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []models.ScenePrompt) []models.ScenePrompt); ok {
		r0 = rf(ctx, generationID, prompts)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.ScenePrompt)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, []models.ScenePrompt) error); ok {
		r1 = rf(ctx, generationID, prompts)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockScenePromptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScenePrompt, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.ScenePrompt
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.ScenePrompt); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.ScenePrompt)
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
func (_m *MockScenePromptRepository) ListByGeneration(ctx context.Context, generationID uuid.UUID) ([]models.ScenePrompt, error) {
	ret := _m.Called(ctx, generationID)

	var r0 []models.ScenePrompt
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []models.ScenePrompt); ok {
		r0 = rf(ctx, generationID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.ScenePrompt)
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

// Update provides a mock function with given fields: ctx, prompt
func (_m *MockScenePromptRepository) Update(ctx context.Context, prompt *models.ScenePrompt) error {
	ret := _m.Called(ctx, prompt)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.ScenePrompt) error); ok {
		r0 = rf(ctx, prompt)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockScenePromptRepository creates a new instance of MockScenePromptRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockScenePromptRepository(t interface {
	mock.TestingT
	Helper()
}) *MockScenePromptRepository {
	m := &MockScenePromptRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ScenePromptRepository = (*MockScenePromptRepository)(nil)
