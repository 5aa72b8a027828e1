package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookforge/internal/mocks"
	"bookforge/internal/models"
	"bookforge/internal/service"
)

func newWorkflowService(t *testing.T) (*service.WorkflowService, *mocks.MockGenerationRepository, *mocks.MockArtifactRepository, *mocks.MockArtifactStore) {
	genRepo := mocks.NewMockGenerationRepository(t)
	artifactRepo := mocks.NewMockArtifactRepository(t)
	store := mocks.NewMockArtifactStore(t)
	svc := service.NewWorkflowService(genRepo, artifactRepo, store, zap.NewNop())
	return svc, genRepo, artifactRepo, store
}

func TestWorkflowService_GetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the same generation for repeated calls", func(t *testing.T) {
		svc, genRepo, _, _ := newWorkflowService(t)
		bookConfigID := uuid.New()
		ownerID := uuid.New()
		gen := &models.Generation{ID: uuid.New(), BookConfigID: bookConfigID, OwnerID: ownerID, CurrentStep: 1, StepsCompleted: models.NewStepsCompleted()}

		genRepo.On("GetOrCreate", mock.Anything, bookConfigID, ownerID).Return(gen, nil).Twice()

		first, err := svc.GetOrCreate(ctx, bookConfigID, ownerID)
		require.NoError(t, err)
		second, err := svc.GetOrCreate(ctx, bookConfigID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		genRepo.AssertExpectations(t)
	})

	t.Run("rejects a nil book config id", func(t *testing.T) {
		svc, _, _, _ := newWorkflowService(t)
		_, err := svc.GetOrCreate(ctx, uuid.Nil, uuid.New())
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestWorkflowService_CompleteStep(t *testing.T) {
	ctx := context.Background()

	t.Run("advances the current step", func(t *testing.T) {
		svc, genRepo, _, _ := newWorkflowService(t)
		genID := uuid.New()
		gen := &models.Generation{ID: genID, CurrentStep: 2, StepsCompleted: models.NewStepsCompleted()}
		gen.StepsCompleted["step1"] = true

		genRepo.On("GetByID", mock.Anything, genID).Return(gen, nil).Once()
		genRepo.On("UpdateProgress", mock.Anything, genID, 3, mock.MatchedBy(func(sc models.StepsCompleted) bool {
			return sc["step2"]
		})).Return(nil).Once()

		updated, err := svc.CompleteStep(ctx, genID, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.CurrentStep)
		genRepo.AssertExpectations(t)
	})

	t.Run("re-completing an earlier step keeps the pointer", func(t *testing.T) {
		svc, genRepo, _, _ := newWorkflowService(t)
		genID := uuid.New()
		gen := &models.Generation{ID: genID, CurrentStep: 5, StepsCompleted: models.NewStepsCompleted()}

		genRepo.On("GetByID", mock.Anything, genID).Return(gen, nil).Once()
		genRepo.On("UpdateProgress", mock.Anything, genID, 5, mock.Anything).Return(nil).Once()

		updated, err := svc.CompleteStep(ctx, genID, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.CurrentStep)
	})

	t.Run("invalid step writes nothing", func(t *testing.T) {
		svc, genRepo, _, _ := newWorkflowService(t)
		genID := uuid.New()
		gen := &models.Generation{ID: genID, CurrentStep: 1, StepsCompleted: models.NewStepsCompleted()}

		genRepo.On("GetByID", mock.Anything, genID).Return(gen, nil).Once()

		_, err := svc.CompleteStep(ctx, genID, 9)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		genRepo.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorkflowService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes owned storage objects before the row", func(t *testing.T) {
		svc, genRepo, artifactRepo, store := newWorkflowService(t)
		genID := uuid.New()
		gen := &models.Generation{ID: genID}

		processed := "generations/x/step1/crop-1.png"
		generated := "generations/x/scenes/y/scene-1.png"
		source := "uploads/source.png"
		artifacts := []models.Artifact{
			{Kind: models.ArtifactCrop, SourceImageKey: &source, ProcessedImageKey: &processed},
			{Kind: models.ArtifactGenerated, GeneratedImageKey: &generated},
		}

		genRepo.On("GetByID", mock.Anything, genID).Return(gen, nil).Once()
		artifactRepo.On("ListByGeneration", mock.Anything, genID).Return(artifacts, nil).Once()
		store.On("Delete", mock.Anything, processed, generated).Return(nil).Once()
		genRepo.On("Delete", mock.Anything, genID).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, genID))
		genRepo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		svc, genRepo, artifactRepo, store := newWorkflowService(t)
		genID := uuid.New()
		key := "generations/x/step1/ref-1.png"
		artifacts := []models.Artifact{{Kind: models.ArtifactGenerated, GeneratedImageKey: &key}}

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()
		artifactRepo.On("ListByGeneration", mock.Anything, genID).Return(artifacts, nil).Once()
		store.On("Delete", mock.Anything, key).Return(assert.AnError).Once()

		err := svc.Delete(ctx, genID)
		require.Error(t, err)
		genRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("no artifacts means no storage call", func(t *testing.T) {
		svc, genRepo, artifactRepo, store := newWorkflowService(t)
		genID := uuid.New()

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()
		artifactRepo.On("ListByGeneration", mock.Anything, genID).Return(nil, nil).Once()
		genRepo.On("Delete", mock.Anything, genID).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, genID))
		store.AssertNotCalled(t, "Delete")
	})
}
