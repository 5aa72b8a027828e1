package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/client"
	"bookforge/internal/models"
	"bookforge/internal/repository"
)

// DefaultPrompts is the system/user prompt pair stage 2 offers the operator.
type DefaultPrompts struct {
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
}

// ProofreadService runs stage 2: LLM proofreading of the story text, with a
// manual-edit staging area and an explicit skip path. The content handed to
// stages 3+ is always read from the corrected-content slot.
type ProofreadService struct {
	generations repository.GenerationRepository
	contents    repository.ContentRepository
	books       client.BookConfigClient
	ai          AIClient
	prompts     *PromptProvider
	logger      *zap.Logger
}

// NewProofreadService creates the stage-2 service.
func NewProofreadService(
	generations repository.GenerationRepository,
	contents repository.ContentRepository,
	books client.BookConfigClient,
	ai AIClient,
	prompts *PromptProvider,
	logger *zap.Logger,
) *ProofreadService {
	return &ProofreadService{
		generations: generations,
		contents:    contents,
		books:       books,
		ai:          ai,
		prompts:     prompts,
		logger:      logger.Named("ProofreadService"),
	}
}

// LoadDefaultPrompt renders the default prompt pair for a generation, with
// the content to correct embedded in the user prompt. When no content is
// supplied the original book content is used. Pure: no state is written, so
// the operator can reload at will.
func (s *ProofreadService) LoadDefaultPrompt(ctx context.Context, generationID uuid.UUID, content *models.StoryContent) (*DefaultPrompts, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content, err = s.books.GetStoryContent(ctx, gen.BookConfigID)
		if err != nil {
			return nil, err
		}
	}
	pair, err := s.defaultPromptPair()
	if err != nil {
		return nil, err
	}
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content for the default prompt: %w", err)
	}
	pair.UserPrompt += "\n\n" + string(contentJSON)
	return pair, nil
}

func (s *ProofreadService) defaultPromptPair() (*DefaultPrompts, error) {
	systemPrompt, err := s.prompts.Render(PromptProofreadSystem, map[string]string{"AgeHint": "4-8"})
	if err != nil {
		return nil, err
	}
	userPrompt, err := s.prompts.Render(PromptProofreadUser, nil)
	if err != nil {
		return nil, err
	}
	return &DefaultPrompts{SystemPrompt: systemPrompt, UserPrompt: userPrompt}, nil
}

// resolveContent returns the document a stage-2 run operates on. The caller
// names the source explicitly; there is no precedence chain to guess.
func (s *ProofreadService) resolveContent(ctx context.Context, gen *models.Generation, source models.ContentSource) (*models.StoryContent, error) {
	switch source {
	case models.ContentSourceOriginal:
		return s.books.GetStoryContent(ctx, gen.BookConfigID)
	case models.ContentSourceManual:
		edit, err := s.contents.GetManual(ctx, gen.ID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%w: no manual edit exists for this generation", models.ErrMissingPrecondition)
			}
			return nil, err
		}
		return &edit.Content, nil
	case models.ContentSourceCorrected:
		corrected, err := s.contents.GetCorrected(ctx, gen.ID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%w: no corrected content exists for this generation", models.ErrMissingPrecondition)
			}
			return nil, err
		}
		return &corrected.Content, nil
	default:
		return nil, fmt.Errorf("%w: unknown content source '%s'", models.ErrInvalidInput, source)
	}
}

// Proofread sends the chosen content with the given prompts to the text
// service and replaces the generation's corrected content with the parsed
// result. Re-running is always allowed and always replaces, never versions.
func (s *ProofreadService) Proofread(ctx context.Context, generationID uuid.UUID, systemPrompt, userPrompt string, source models.ContentSource) (*models.CorrectedContent, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}

	content, err := s.resolveContent(ctx, gen, source)
	if err != nil {
		return nil, err
	}

	if systemPrompt == "" || userPrompt == "" {
		// content-free pair: the resolved content is appended below either way
		defaults, err := s.defaultPromptPair()
		if err != nil {
			return nil, err
		}
		if systemPrompt == "" {
			systemPrompt = defaults.SystemPrompt
		}
		if userPrompt == "" {
			userPrompt = defaults.UserPrompt
		}
	}

	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content for proofreading: %w", err)
	}

	raw, err := s.ai.CompleteJSON(ctx, systemPrompt, userPrompt+"\n\n"+string(contentJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	var correctedStory models.StoryContent
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &correctedStory); err != nil {
		s.logger.Error("Model returned unparseable content", zap.String("generation_id", gen.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: model returned invalid JSON: %v", models.ErrGenerationFailed, err)
	}
	if correctedStory.Title == "" || len(correctedStory.Scenes) == 0 {
		return nil, fmt.Errorf("%w: model response is missing title or scenes", models.ErrGenerationFailed)
	}

	corrected := &models.CorrectedContent{
		GenerationID: gen.ID,
		Content:      correctedStory,
		ModelUsed:    s.ai.ModelName(),
	}
	if err := s.contents.UpsertCorrected(ctx, corrected); err != nil {
		return nil, err
	}

	s.logger.Info("Story proofread",
		zap.String("generation_id", gen.ID.String()),
		zap.String("source", string(source)),
		zap.Int("scene_count", len(correctedStory.Scenes)))
	return corrected, nil
}

// SaveManualEdit persists operator-edited content. Before correction has run
// it lands in the staging slot; afterwards it overwrites the corrected
// content directly.
func (s *ProofreadService) SaveManualEdit(ctx context.Context, generationID uuid.UUID, content models.StoryContent) error {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return err
	}
	if content.Title == "" || len(content.Scenes) == 0 {
		return fmt.Errorf("%w: content must have a title and at least one scene", models.ErrInvalidInput)
	}

	existing, err := s.contents.GetCorrected(ctx, gen.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if existing != nil {
		existing.Content = content
		return s.contents.UpsertCorrected(ctx, existing)
	}
	return s.contents.UpsertManual(ctx, &models.ManualEdit{GenerationID: gen.ID, Content: content})
}

// Skip promotes the staged (or original) content into the corrected slot
// without calling the text service. A deliberate bypass for stories the
// operator already trusts.
func (s *ProofreadService) Skip(ctx context.Context, generationID uuid.UUID) (*models.CorrectedContent, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}

	var content *models.StoryContent
	edit, err := s.contents.GetManual(ctx, gen.ID)
	switch {
	case err == nil:
		content = &edit.Content
	case errors.Is(err, models.ErrNotFound):
		content, err = s.books.GetStoryContent(ctx, gen.BookConfigID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	corrected := &models.CorrectedContent{
		GenerationID: gen.ID,
		Content:      *content,
		ModelUsed:    models.ModelUsedManual,
	}
	if err := s.contents.UpsertCorrected(ctx, corrected); err != nil {
		return nil, err
	}
	s.logger.Info("Proofreading skipped", zap.String("generation_id", gen.ID.String()))
	return corrected, nil
}

// GetContent returns the generation's corrected content.
func (s *ProofreadService) GetContent(ctx context.Context, generationID uuid.UUID) (*models.CorrectedContent, error) {
	if _, err := s.generations.GetByID(ctx, generationID); err != nil {
		return nil, err
	}
	return s.contents.GetCorrected(ctx, generationID)
}
