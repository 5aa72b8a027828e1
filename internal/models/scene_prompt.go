package models

import (
	"time"

	"github.com/google/uuid"
)

// SceneType distinguishes the cover from numbered scenes.
type SceneType string

const (
	SceneTypeCover SceneType = "cover"
	SceneTypeScene SceneType = "scene"
)

// ScenePrompt is the image prompt for one scene (or the cover), generated by
// stage 3 and edited in place afterwards. EntityIDs is a non-owning list of
// the entities that appear in the scene; stage 6 uses it to gather reference
// images.
type ScenePrompt struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	GenerationID uuid.UUID   `json:"generationId" db:"generation_id"`
	SceneType    SceneType   `json:"sceneType" db:"scene_type"`
	SceneNumber  int         `json:"sceneNumber" db:"scene_number"`
	ImagePrompt  string      `json:"imagePrompt" db:"image_prompt"`
	EntityIDs    []uuid.UUID `json:"entityIds" db:"entity_ids"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}
