package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/models"
	"bookforge/internal/repository"
	"bookforge/internal/storage"
)

// stageThreeOutput is the JSON shape the scene-prompt model returns, also
// accepted verbatim through the manual import escape hatch.
type stageThreeOutput struct {
	Entities []generatedEntity `json:"entities"`
	Scenes   []generatedScene  `json:"scenes"`
}

type generatedEntity struct {
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	CharacterType   models.CharacterType `json:"characterType"`
	IsMainCharacter bool                 `json:"isMainCharacter"`
	ReferencePrompt string               `json:"referencePrompt"`
}

type generatedScene struct {
	SceneType   models.SceneType `json:"sceneType"`
	SceneNumber int              `json:"sceneNumber"`
	ImagePrompt string           `json:"imagePrompt"`
	Entities    []string         `json:"entities"`
}

// PromptGenService runs stage 3: one model call turns the corrected story
// into per-scene image prompts plus the canon of characters and objects.
// Operators can re-run it, import hand-authored JSON instead, and edit
// individual prompts in place afterwards.
type PromptGenService struct {
	generations repository.GenerationRepository
	contents    repository.ContentRepository
	entities    repository.EntityRepository
	scenes      repository.ScenePromptRepository
	artifacts   repository.ArtifactRepository
	store       storage.ArtifactStore
	ai          AIClient
	prompts     *PromptProvider
	logger      *zap.Logger
}

// NewPromptGenService creates the stage-3 service.
func NewPromptGenService(
	generations repository.GenerationRepository,
	contents repository.ContentRepository,
	entities repository.EntityRepository,
	scenes repository.ScenePromptRepository,
	artifacts repository.ArtifactRepository,
	store storage.ArtifactStore,
	ai AIClient,
	prompts *PromptProvider,
	logger *zap.Logger,
) *PromptGenService {
	return &PromptGenService{
		generations: generations,
		contents:    contents,
		entities:    entities,
		scenes:      scenes,
		artifacts:   artifacts,
		store:       store,
		ai:          ai,
		prompts:     prompts,
		logger:      logger.Named("PromptGenService"),
	}
}

// GeneratePrompts generates scene prompts and the entity canon in one model
// call. Requires corrected content from stage 2.
func (s *PromptGenService) GeneratePrompts(ctx context.Context, generationID uuid.UUID) ([]models.ScenePrompt, []models.Entity, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, nil, err
	}
	corrected, err := s.requireCorrected(ctx, gen.ID)
	if err != nil {
		return nil, nil, err
	}

	output, err := s.callModel(ctx, corrected, PromptScenesSystem, PromptScenesUser)
	if err != nil {
		return nil, nil, err
	}
	if len(output.Scenes) == 0 {
		return nil, nil, fmt.Errorf("%w: model returned no scenes", models.ErrGenerationFailed)
	}

	return s.persist(ctx, gen.ID, output)
}

// ExtractCharacters generates only the character/object list from the
// corrected story, leaving scene prompts untouched.
func (s *PromptGenService) ExtractCharacters(ctx context.Context, generationID uuid.UUID) ([]models.Entity, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	corrected, err := s.requireCorrected(ctx, gen.ID)
	if err != nil {
		return nil, err
	}

	output, err := s.callModel(ctx, corrected, PromptExtractSystem, PromptExtractUser)
	if err != nil {
		return nil, err
	}
	if len(output.Entities) == 0 {
		return nil, fmt.Errorf("%w: model returned no entities", models.ErrGenerationFailed)
	}

	return s.persistEntities(ctx, gen.ID, output.Entities)
}

// ImportPrompts accepts hand-authored JSON matching the model output schema
// and persists it through the same path, bypassing the model entirely.
// Generation quality varies; operators need a recovery path.
func (s *PromptGenService) ImportPrompts(ctx context.Context, generationID uuid.UUID, raw json.RawMessage) ([]models.ScenePrompt, []models.Entity, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, nil, err
	}

	var output stageThreeOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, nil, fmt.Errorf("%w: pasted JSON does not match the expected schema: %v", models.ErrInvalidInput, err)
	}
	if len(output.Scenes) == 0 {
		return nil, nil, fmt.Errorf("%w: pasted JSON contains no scenes", models.ErrInvalidInput)
	}

	return s.persist(ctx, gen.ID, &output)
}

// UpdateScenePrompt edits a prompt in place. Scene prompts are never
// versioned.
func (s *PromptGenService) UpdateScenePrompt(ctx context.Context, promptID uuid.UUID, imagePrompt *string, entityIDs []uuid.UUID) (*models.ScenePrompt, error) {
	prompt, err := s.scenes.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if imagePrompt != nil {
		if strings.TrimSpace(*imagePrompt) == "" {
			return nil, fmt.Errorf("%w: imagePrompt cannot be empty", models.ErrInvalidInput)
		}
		prompt.ImagePrompt = *imagePrompt
	}
	if entityIDs != nil {
		known, err := s.entities.ListByGeneration(ctx, prompt.GenerationID)
		if err != nil {
			return nil, err
		}
		knownIDs := make(map[uuid.UUID]bool, len(known))
		for _, e := range known {
			knownIDs[e.ID] = true
		}
		for _, id := range entityIDs {
			if !knownIDs[id] {
				return nil, fmt.Errorf("%w: entity '%s' does not belong to this generation", models.ErrInvalidInput, id)
			}
		}
		prompt.EntityIDs = entityIDs
	}
	if err := s.scenes.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// ListScenePrompts returns the generation's scene prompts, cover first.
func (s *PromptGenService) ListScenePrompts(ctx context.Context, generationID uuid.UUID) ([]models.ScenePrompt, error) {
	if _, err := s.generations.GetByID(ctx, generationID); err != nil {
		return nil, err
	}
	return s.scenes.ListByGeneration(ctx, generationID)
}

// ListEntities returns the generation's entity canon, main character first.
func (s *PromptGenService) ListEntities(ctx context.Context, generationID uuid.UUID) ([]models.Entity, error) {
	if _, err := s.generations.GetByID(ctx, generationID); err != nil {
		return nil, err
	}
	return s.entities.ListByGeneration(ctx, generationID)
}

// AddEntity adds an operator-defined entity to the canon.
func (s *PromptGenService) AddEntity(ctx context.Context, generationID uuid.UUID, name, description string, characterType models.CharacterType, referencePrompt string) (*models.Entity, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: entity name is required", models.ErrInvalidInput)
	}
	if characterType != models.CharacterTypeCharacter && characterType != models.CharacterTypeObject {
		return nil, fmt.Errorf("%w: characterType must be 'character' or 'object'", models.ErrInvalidInput)
	}

	entity := &models.Entity{
		GenerationID:    gen.ID,
		Name:            name,
		Description:     description,
		CharacterType:   characterType,
		IsCustom:        true,
		ReferencePrompt: referencePrompt,
	}
	if err := s.entities.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// DeleteEntity removes a custom entity and its reference-image artifacts.
// Extracted entities and the main character are never deletable.
func (s *PromptGenService) DeleteEntity(ctx context.Context, entityID uuid.UUID) error {
	entity, err := s.entities.GetByID(ctx, entityID)
	if err != nil {
		return err
	}
	if !entity.Deletable() {
		return fmt.Errorf("%w: '%s'", models.ErrEntityNotDeletable, entity.Name)
	}

	artifacts, err := s.artifacts.ListBySubject(ctx, models.EntitySubject(entity.GenerationID, entity.ID))
	if err != nil {
		return err
	}
	var keys []string
	for i := range artifacts {
		keys = append(keys, artifacts[i].OwnedStorageKeys()...)
	}
	if len(keys) > 0 {
		if err := s.store.Delete(ctx, keys...); err != nil {
			return err
		}
	}

	// Artifact rows cascade with the entity row.
	if err := s.entities.Delete(ctx, entity.ID); err != nil {
		return err
	}
	s.logger.Info("Custom entity deleted",
		zap.String("entity_id", entity.ID.String()),
		zap.String("name", entity.Name),
		zap.Int("artifacts_removed", len(artifacts)))
	return nil
}

func (s *PromptGenService) requireCorrected(ctx context.Context, generationID uuid.UUID) (*models.CorrectedContent, error) {
	corrected, err := s.contents.GetCorrected(ctx, generationID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: proofread or skip step 2 before generating prompts", models.ErrMissingPrecondition)
		}
		return nil, err
	}
	return corrected, nil
}

func (s *PromptGenService) callModel(ctx context.Context, corrected *models.CorrectedContent, systemTemplate, userTemplate string) (*stageThreeOutput, error) {
	systemPrompt, err := s.prompts.Render(systemTemplate, nil)
	if err != nil {
		return nil, err
	}
	userPrompt, err := s.prompts.Render(userTemplate, nil)
	if err != nil {
		return nil, err
	}
	contentJSON, err := json.Marshal(corrected.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal corrected content: %w", err)
	}

	raw, err := s.ai.CompleteJSON(ctx, systemPrompt, userPrompt+"\n\n"+string(contentJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	var output stageThreeOutput
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &output); err != nil {
		s.logger.Error("Model returned unparseable stage-3 output", zap.Error(err))
		return nil, fmt.Errorf("%w: model returned invalid JSON: %v", models.ErrGenerationFailed, err)
	}
	return &output, nil
}

// sweepSubjectStorage deletes the storage objects owned by a subject's
// artifacts. The rows themselves cascade with the owning entity or scene
// prompt, so storage goes first: a failure here keeps the rows intact.
func (s *PromptGenService) sweepSubjectStorage(ctx context.Context, subject models.Subject) error {
	artifacts, err := s.artifacts.ListBySubject(ctx, subject)
	if err != nil {
		return err
	}
	var keys []string
	for i := range artifacts {
		keys = append(keys, artifacts[i].OwnedStorageKeys()...)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.store.Delete(ctx, keys...)
}

// persistEntities stores the extracted canon: the main character is kept as a
// dedicated row (never re-extracted away), everything else replaces the
// previous extraction while custom entities survive. Reference images of the
// entities being replaced are removed from storage before their rows go.
func (s *PromptGenService) persistEntities(ctx context.Context, generationID uuid.UUID, generated []generatedEntity) ([]models.Entity, error) {
	existing, err := s.entities.ListByGeneration(ctx, generationID)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.IsCustom || e.IsMainCharacter {
			continue
		}
		if err := s.sweepSubjectStorage(ctx, models.EntitySubject(generationID, e.ID)); err != nil {
			return nil, err
		}
	}

	mainName := "Main Character"
	extracted := make([]models.Entity, 0, len(generated))
	for _, ge := range generated {
		if ge.IsMainCharacter {
			if ge.Name != "" {
				mainName = ge.Name
			}
			continue
		}
		characterType := ge.CharacterType
		if characterType != models.CharacterTypeObject {
			characterType = models.CharacterTypeCharacter
		}
		extracted = append(extracted, models.Entity{
			Name:            ge.Name,
			Description:     ge.Description,
			CharacterType:   characterType,
			ReferencePrompt: ge.ReferencePrompt,
		})
	}

	if _, err := s.entities.EnsureMainCharacter(ctx, generationID, mainName); err != nil {
		return nil, err
	}
	if _, err := s.entities.ReplaceExtracted(ctx, generationID, extracted); err != nil {
		return nil, err
	}
	return s.entities.ListByGeneration(ctx, generationID)
}

func (s *PromptGenService) persist(ctx context.Context, generationID uuid.UUID, output *stageThreeOutput) ([]models.ScenePrompt, []models.Entity, error) {
	entities, err := s.persistEntities(ctx, generationID, output.Entities)
	if err != nil {
		return nil, nil, err
	}

	idsByName := make(map[string]uuid.UUID, len(entities))
	for _, e := range entities {
		idsByName[strings.ToLower(e.Name)] = e.ID
	}

	prompts := make([]models.ScenePrompt, 0, len(output.Scenes))
	for _, gs := range output.Scenes {
		sceneType := gs.SceneType
		if sceneType != models.SceneTypeCover {
			sceneType = models.SceneTypeScene
		}
		var entityIDs []uuid.UUID
		for _, name := range gs.Entities {
			if id, ok := idsByName[strings.ToLower(name)]; ok {
				entityIDs = append(entityIDs, id)
			} else {
				s.logger.Warn("Scene references unknown entity, skipping",
					zap.String("generation_id", generationID.String()),
					zap.String("entity_name", name),
					zap.Int("scene_number", gs.SceneNumber))
			}
		}
		prompts = append(prompts, models.ScenePrompt{
			SceneType:   sceneType,
			SceneNumber: gs.SceneNumber,
			ImagePrompt: gs.ImagePrompt,
			EntityIDs:   entityIDs,
		})
	}

	// Replacing the prompts cascades their scene-image artifact rows; the
	// storage objects those rows own have to go first.
	existingPrompts, err := s.scenes.ListByGeneration(ctx, generationID)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range existingPrompts {
		if err := s.sweepSubjectStorage(ctx, models.SceneSubject(generationID, p.ID)); err != nil {
			return nil, nil, err
		}
	}

	saved, err := s.scenes.Replace(ctx, generationID, prompts)
	if err != nil {
		return nil, nil, err
	}
	return saved, entities, nil
}
