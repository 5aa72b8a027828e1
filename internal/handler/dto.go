package handler

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookforge/internal/models"
)

type getOrCreateGenerationRequest struct {
	BookConfigID uuid.UUID `json:"bookConfigId"`
	OwnerID      uuid.UUID `json:"ownerId"`
}

func (r getOrCreateGenerationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookConfigID, validation.Required, validation.By(nonNilUUID)),
		validation.Field(&r.OwnerID, validation.Required, validation.By(nonNilUUID)),
	)
}

type completeStepRequest struct {
	Step int `json:"step"`
}

func (r completeStepRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Step, validation.Required, validation.Min(models.MinStep), validation.Max(models.MaxStep)),
	)
}

type cropRequest struct {
	SourceImageKey string          `json:"sourceImageKey"`
	Rect           models.CropRect `json:"rect"`
}

func (r cropRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SourceImageKey, validation.Required),
		validation.Field(&r.Rect, validation.By(validCropRect)),
	)
}

type generateMainReferenceRequest struct {
	ImageKeys    []string `json:"imageKeys"`
	SystemPrompt string   `json:"systemPrompt"`
	UserPrompt   string   `json:"userPrompt"`
}

func (r generateMainReferenceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ImageKeys, validation.Required, validation.Length(1, 0)),
	)
}

// defaultPromptRequest optionally supplies the content the default user
// prompt is rendered against; absent, the original book content is used.
type defaultPromptRequest struct {
	Content *models.StoryContent `json:"content"`
}

type proofreadRequest struct {
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
	Source       string `json:"source"`
}

func (r proofreadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Source, validation.In(
			string(models.ContentSourceOriginal),
			string(models.ContentSourceManual),
			string(models.ContentSourceCorrected),
		)),
	)
}

type manualEditRequest struct {
	Content models.StoryContent `json:"content"`
}

func (r manualEditRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.By(nonEmptyContent)),
	)
}

type importPromptsRequest struct {
	Data json.RawMessage `json:"data"`
}

func (r importPromptsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Data, validation.Required),
	)
}

type updateScenePromptRequest struct {
	ImagePrompt *string     `json:"imagePrompt"`
	EntityIDs   []uuid.UUID `json:"entityIds"`
}

type addEntityRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CharacterType   string `json:"characterType"`
	ReferencePrompt string `json:"referencePrompt"`
}

func (r addEntityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.CharacterType, validation.Required, validation.In(
			string(models.CharacterTypeCharacter),
			string(models.CharacterTypeObject),
		)),
	)
}

type generateEntityReferenceRequest struct {
	CustomPrompt string `json:"customPrompt"`
}

func nonNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}

func validCropRect(value interface{}) error {
	rect, _ := value.(models.CropRect)
	if rect.Width <= 0 || rect.Height <= 0 {
		return validation.NewError("validation_crop_rect", "width and height must be positive")
	}
	if rect.Unit != "" && rect.Unit != models.CropUnitPixel && rect.Unit != models.CropUnitPercent {
		return validation.NewError("validation_crop_rect", "unit must be 'px' or '%'")
	}
	return nil
}

func nonEmptyContent(value interface{}) error {
	content, _ := value.(models.StoryContent)
	if len(content.Scenes) == 0 {
		return validation.NewError("validation_content", "content must contain at least one scene")
	}
	return nil
}
