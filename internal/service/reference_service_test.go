package service_test

import (
	"context"
	"strings"
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

func newReferenceService(t *testing.T) (*service.ReferenceService, *mocks.MockGenerationRepository, *mocks.MockEntityRepository, *mocks.MockArtifactRepository, *mocks.MockArtifactStore, *mocks.MockImageClient) {
	genRepo := mocks.NewMockGenerationRepository(t)
	entityRepo := mocks.NewMockEntityRepository(t)
	artifactRepo := mocks.NewMockArtifactRepository(t)
	store := mocks.NewMockArtifactStore(t)
	images := mocks.NewMockImageClient(t)
	svc := service.NewReferenceService(genRepo, entityRepo, artifactRepo, store, images, testPromptProvider(t), zap.NewNop())
	return svc, genRepo, entityRepo, artifactRepo, store, images
}

func TestReferenceService_GenerateSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the entity's stored reference prompt", func(t *testing.T) {
		svc, _, entityRepo, artifactRepo, store, images := newReferenceService(t)
		genID := uuid.New()
		entityID := uuid.New()
		entity := &models.Entity{ID: entityID, GenerationID: genID, Name: "Fox", ReferencePrompt: "a sly red fox in a scarf"}

		entityRepo.On("GetByID", mock.Anything, entityID).Return(entity, nil).Once()
		images.On("Generate", mock.Anything, "a sly red fox in a scarf", mock.Anything).Return([]byte("img"), nil).Once()
		store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.Contains(key, entityID.String())
		}), []byte("img"), "image/png").Return(nil).Once()
		artifactRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		artifact, err := svc.GenerateSingle(ctx, entityID, "")
		require.NoError(t, err)
		assert.Equal(t, models.SubjectEntity, artifact.SubjectKind)
		assert.Equal(t, "a sly red fox in a scarf", artifact.Notes.UserPrompt)
	})

	t.Run("custom prompt overrides everything", func(t *testing.T) {
		svc, _, entityRepo, artifactRepo, store, images := newReferenceService(t)
		entityID := uuid.New()
		entity := &models.Entity{ID: entityID, GenerationID: uuid.New(), Name: "Fox", ReferencePrompt: "stored prompt"}

		entityRepo.On("GetByID", mock.Anything, entityID).Return(entity, nil).Once()
		images.On("Generate", mock.Anything, "watercolor fox", mock.Anything).Return([]byte("img"), nil).Once()
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		artifactRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.GenerateSingle(ctx, entityID, "watercolor fox")
		require.NoError(t, err)
	})

	t.Run("falls back to the template when no prompt is stored", func(t *testing.T) {
		svc, _, entityRepo, artifactRepo, store, images := newReferenceService(t)
		entityID := uuid.New()
		entity := &models.Entity{ID: entityID, GenerationID: uuid.New(), Name: "Lantern", Description: "an old brass lantern"}

		entityRepo.On("GetByID", mock.Anything, entityID).Return(entity, nil).Once()
		images.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Lantern") && strings.Contains(prompt, "an old brass lantern")
		}), mock.Anything).Return([]byte("img"), nil).Once()
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		artifactRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.GenerateSingle(ctx, entityID, "")
		require.NoError(t, err)
	})

	t.Run("rejects the main character", func(t *testing.T) {
		svc, _, entityRepo, artifactRepo, _, images := newReferenceService(t)
		entityID := uuid.New()
		entityRepo.On("GetByID", mock.Anything, entityID).
			Return(&models.Entity{ID: entityID, Name: "Mila", IsMainCharacter: true}, nil).Once()

		_, err := svc.GenerateSingle(ctx, entityID, "")
		assert.ErrorIs(t, err, models.ErrMainCharacterImage)
		images.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		artifactRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReferenceService_GenerateAll(t *testing.T) {
	ctx := context.Background()

	t.Run("skips the main character and survives per-entity failures", func(t *testing.T) {
		svc, genRepo, entityRepo, artifactRepo, store, images := newReferenceService(t)
		genID := uuid.New()
		mainID := uuid.New()
		foxID := uuid.New()
		owlID := uuid.New()
		entities := []models.Entity{
			{ID: mainID, GenerationID: genID, Name: "Mila", IsMainCharacter: true},
			{ID: foxID, GenerationID: genID, Name: "Fox", ReferencePrompt: "a fox"},
			{ID: owlID, GenerationID: genID, Name: "Owl", ReferencePrompt: "an owl"},
		}

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()
		entityRepo.On("ListByGeneration", mock.Anything, genID).Return(entities, nil).Once()
		entityRepo.On("GetByID", mock.Anything, foxID).Return(&entities[1], nil).Once()
		entityRepo.On("GetByID", mock.Anything, owlID).Return(&entities[2], nil).Once()
		images.On("Generate", mock.Anything, "a fox", mock.Anything).Return(nil, assert.AnError).Once()
		images.On("Generate", mock.Anything, "an owl", mock.Anything).Return([]byte("img"), nil).Once()
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		artifactRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		created, err := svc.GenerateAll(ctx, genID)
		require.Error(t, err)
		assert.Len(t, created, 1)
		require.NotNil(t, created[0].EntityID)
		assert.Equal(t, owlID, *created[0].EntityID)
	})
}

func TestReferenceService_UploadVersion(t *testing.T) {
	ctx := context.Background()
	svc, _, entityRepo, artifactRepo, store, _ := newReferenceService(t)
	genID := uuid.New()
	entityID := uuid.New()
	entity := &models.Entity{ID: entityID, GenerationID: genID, Name: "Fox"}

	entityRepo.On("GetByID", mock.Anything, entityID).Return(entity, nil).Once()
	store.On("Upload", mock.Anything, mock.Anything, []byte("data"), "image/webp").Return(nil).Once()
	artifactRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	artifact, err := svc.UploadVersion(ctx, entityID, []byte("data"), "image/webp")
	require.NoError(t, err)
	assert.Equal(t, models.ArtifactUpload, artifact.Kind)
}
