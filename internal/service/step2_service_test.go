package service_test

import (
	"context"
	"encoding/json"
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

func newProofreadService(t *testing.T) (*service.ProofreadService, *mocks.MockGenerationRepository, *mocks.MockContentRepository, *mocks.MockBookConfigClient, *mocks.MockAIClient) {
	genRepo := mocks.NewMockGenerationRepository(t)
	contentRepo := mocks.NewMockContentRepository(t)
	books := mocks.NewMockBookConfigClient(t)
	ai := mocks.NewMockAIClient(t)
	svc := service.NewProofreadService(genRepo, contentRepo, books, ai, testPromptProvider(t), zap.NewNop())
	return svc, genRepo, contentRepo, books, ai
}

func testStory(title string) models.StoryContent {
	return models.StoryContent{
		Title:            title,
		ShortDescription: "A short adventure",
		Scenes: []models.StoryScene{
			{Number: 1, Text: "Mila finds a paper boat."},
			{Number: 2, Text: "The boat sails away."},
		},
		MotivationalEnding: "Every journey starts small.",
	}
}

func TestProofreadService_LoadDefaultPrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds supplied content without calling the book service", func(t *testing.T) {
		svc, genRepo, _, books, _ := newProofreadService(t)
		genID := uuid.New()
		content := testStory("Hand-Picked Draft")

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()

		pair, err := svc.LoadDefaultPrompt(ctx, genID, &content)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.SystemPrompt)
		assert.Contains(t, pair.UserPrompt, "Hand-Picked Draft")
		books.AssertNotCalled(t, "GetStoryContent", mock.Anything, mock.Anything)
	})

	t.Run("falls back to the original book content", func(t *testing.T) {
		svc, genRepo, _, books, _ := newProofreadService(t)
		genID := uuid.New()
		bookConfigID := uuid.New()
		original := testStory("The Original")

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID, BookConfigID: bookConfigID}, nil).Once()
		books.On("GetStoryContent", mock.Anything, bookConfigID).Return(&original, nil).Once()

		pair, err := svc.LoadDefaultPrompt(ctx, genID, nil)
		require.NoError(t, err)
		assert.Contains(t, pair.UserPrompt, "The Original")
	})
}

func TestProofreadService_Proofread(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces corrected content with the model output", func(t *testing.T) {
		svc, genRepo, contentRepo, books, ai := newProofreadService(t)
		genID := uuid.New()
		bookConfigID := uuid.New()
		gen := &models.Generation{ID: genID, BookConfigID: bookConfigID}
		original := testStory("mila and the boat")
		correctedStory := testStory("Mila and the Boat")
		modelJSON, err := json.Marshal(correctedStory)
		require.NoError(t, err)

		genRepo.On("GetByID", mock.Anything, genID).Return(gen, nil).Once()
		books.On("GetStoryContent", mock.Anything, bookConfigID).Return(&original, nil).Once()
		ai.On("CompleteJSON", mock.Anything, "fix the text", mock.MatchedBy(func(user string) bool {
			return len(user) > 0
		})).Return(string(modelJSON), nil).Once()
		ai.On("ModelName").Return("gpt-4o").Once()
		contentRepo.On("UpsertCorrected", mock.Anything, mock.MatchedBy(func(c *models.CorrectedContent) bool {
			return c.GenerationID == genID && c.Content.Title == "Mila and the Boat" && c.ModelUsed == "gpt-4o"
		})).Return(nil).Once()

		corrected, err := svc.Proofread(ctx, genID, "fix the text", "please proofread", models.ContentSourceOriginal)
		require.NoError(t, err)
		assert.Equal(t, "Mila and the Boat", corrected.Content.Title)
		contentRepo.AssertExpectations(t)
	})

	t.Run("manual source without a manual edit is a precondition error", func(t *testing.T) {
		svc, genRepo, contentRepo, _, ai := newProofreadService(t)
		genID := uuid.New()

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()
		contentRepo.On("GetManual", mock.Anything, genID).Return(nil, models.ErrNotFound).Once()

		_, err := svc.Proofread(ctx, genID, "s", "u", models.ContentSourceManual)
		assert.ErrorIs(t, err, models.ErrMissingPrecondition)
		ai.AssertNotCalled(t, "CompleteJSON", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid model output stores nothing", func(t *testing.T) {
		svc, genRepo, contentRepo, books, ai := newProofreadService(t)
		genID := uuid.New()
		bookConfigID := uuid.New()
		original := testStory("A Story")

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID, BookConfigID: bookConfigID}, nil).Once()
		books.On("GetStoryContent", mock.Anything, bookConfigID).Return(&original, nil).Once()
		ai.On("CompleteJSON", mock.Anything, mock.Anything, mock.Anything).Return("not json at all", nil).Once()

		_, err := svc.Proofread(ctx, genID, "s", "u", models.ContentSourceOriginal)
		assert.ErrorIs(t, err, models.ErrGenerationFailed)
		contentRepo.AssertNotCalled(t, "UpsertCorrected", mock.Anything, mock.Anything)
	})
}

func TestProofreadService_SaveManualEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("stages the edit before correction has run", func(t *testing.T) {
		svc, genRepo, contentRepo, _, _ := newProofreadService(t)
		genID := uuid.New()
		content := testStory("Edited Title")

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()
		contentRepo.On("GetCorrected", mock.Anything, genID).Return(nil, models.ErrNotFound).Once()
		contentRepo.On("UpsertManual", mock.Anything, mock.MatchedBy(func(e *models.ManualEdit) bool {
			return e.GenerationID == genID && e.Content.Title == "Edited Title"
		})).Return(nil).Once()

		require.NoError(t, svc.SaveManualEdit(ctx, genID, content))
	})

	t.Run("overwrites corrected content after correction, keeping the model tag", func(t *testing.T) {
		svc, genRepo, contentRepo, _, _ := newProofreadService(t)
		genID := uuid.New()
		existing := &models.CorrectedContent{GenerationID: genID, Content: testStory("Old"), ModelUsed: "gpt-4o"}

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()
		contentRepo.On("GetCorrected", mock.Anything, genID).Return(existing, nil).Once()
		contentRepo.On("UpsertCorrected", mock.Anything, mock.MatchedBy(func(c *models.CorrectedContent) bool {
			return c.Content.Title == "New" && c.ModelUsed == "gpt-4o"
		})).Return(nil).Once()

		require.NoError(t, svc.SaveManualEdit(ctx, genID, testStory("New")))
		contentRepo.AssertNotCalled(t, "UpsertManual", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		svc, genRepo, _, _, _ := newProofreadService(t)
		genID := uuid.New()
		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()

		err := svc.SaveManualEdit(ctx, genID, models.StoryContent{})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestProofreadService_Skip(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes the manual edit when one exists", func(t *testing.T) {
		svc, genRepo, contentRepo, books, _ := newProofreadService(t)
		genID := uuid.New()
		edit := &models.ManualEdit{GenerationID: genID, Content: testStory("Manual Version")}

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID}, nil).Once()
		contentRepo.On("GetManual", mock.Anything, genID).Return(edit, nil).Once()
		contentRepo.On("UpsertCorrected", mock.Anything, mock.MatchedBy(func(c *models.CorrectedContent) bool {
			return c.Content.Title == "Manual Version" && c.ModelUsed == models.ModelUsedManual
		})).Return(nil).Once()

		corrected, err := svc.Skip(ctx, genID)
		require.NoError(t, err)
		assert.Equal(t, models.ModelUsedManual, corrected.ModelUsed)
		books.AssertNotCalled(t, "GetStoryContent", mock.Anything, mock.Anything)
	})

	t.Run("falls back to the original content", func(t *testing.T) {
		svc, genRepo, contentRepo, books, _ := newProofreadService(t)
		genID := uuid.New()
		bookConfigID := uuid.New()
		original := testStory("Original")

		genRepo.On("GetByID", mock.Anything, genID).Return(&models.Generation{ID: genID, BookConfigID: bookConfigID}, nil).Once()
		contentRepo.On("GetManual", mock.Anything, genID).Return(nil, models.ErrNotFound).Once()
		books.On("GetStoryContent", mock.Anything, bookConfigID).Return(&original, nil).Once()
		contentRepo.On("UpsertCorrected", mock.Anything, mock.MatchedBy(func(c *models.CorrectedContent) bool {
			return c.Content.Title == "Original"
		})).Return(nil).Once()

		_, err := svc.Skip(ctx, genID)
		require.NoError(t, err)
	})
}
