package models

import (
	"time"

	"github.com/google/uuid"
)

// SubjectKind identifies what an artifact version belongs to.
type SubjectKind string

const (
	SubjectMainCharacter SubjectKind = "main_character"
	SubjectEntity        SubjectKind = "entity"
	SubjectScene         SubjectKind = "scene"
)

// ArtifactKind discriminates how an artifact was produced.
type ArtifactKind string

const (
	ArtifactCrop      ArtifactKind = "crop"
	ArtifactGenerated ArtifactKind = "generated"
	ArtifactUpload    ArtifactKind = "upload"
)

// Units a CropRect can be expressed in.
const (
	CropUnitPixel   = "px"
	CropUnitPercent = "%"
)

// CropRect is a crop rectangle in source-image natural coordinates. Unit is
// "px" (default) or "%"; percent rects are resolved against the actual image
// size at crop time.
type CropRect struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Unit   string `json:"unit,omitempty"`
}

// PixelRect resolves the rectangle to pixels for an image of the given
// dimensions.
func (r CropRect) PixelRect(imageWidth, imageHeight int) (x, y, w, h int) {
	if r.Unit == CropUnitPercent {
		return imageWidth * r.X / 100, imageHeight * r.Y / 100,
			imageWidth * r.Width / 100, imageHeight * r.Height / 100
	}
	return r.X, r.Y, r.Width, r.Height
}

// ArtifactNotes holds free-form provenance metadata stored as jsonb.
type ArtifactNotes struct {
	ReferenceImageKeys []string  `json:"referenceImageKeys,omitempty"`
	SystemPrompt       string    `json:"systemPrompt,omitempty"`
	UserPrompt         string    `json:"userPrompt,omitempty"`
	CropRect           *CropRect `json:"cropRect,omitempty"`
	ContentType        string    `json:"contentType,omitempty"`
}

// Subject is the sibling group an artifact version competes in: the main
// character, one entity, or one scene. At most one version per subject is
// selected at any time.
type Subject struct {
	GenerationID  uuid.UUID
	Kind          SubjectKind
	EntityID      *uuid.UUID
	ScenePromptID *uuid.UUID
}

// MainCharacterSubject returns the stage-1 subject for a generation.
func MainCharacterSubject(generationID uuid.UUID) Subject {
	return Subject{GenerationID: generationID, Kind: SubjectMainCharacter}
}

// EntitySubject returns the reference-image subject for an entity.
func EntitySubject(generationID, entityID uuid.UUID) Subject {
	return Subject{GenerationID: generationID, Kind: SubjectEntity, EntityID: &entityID}
}

// SceneSubject returns the scene-image subject for a scene prompt.
func SceneSubject(generationID, scenePromptID uuid.UUID) Subject {
	return Subject{GenerationID: generationID, Kind: SubjectScene, ScenePromptID: &scenePromptID}
}

// Artifact is one attempt at producing an image for a subject. Rows are
// append-only: re-running a stage creates a new version, nothing is mutated
// in place except the is_selected flag.
type Artifact struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	GenerationID      uuid.UUID     `json:"generationId" db:"generation_id"`
	SubjectKind       SubjectKind   `json:"subjectKind" db:"subject_kind"`
	EntityID          *uuid.UUID    `json:"entityId,omitempty" db:"entity_id"`
	ScenePromptID     *uuid.UUID    `json:"scenePromptId,omitempty" db:"scene_prompt_id"`
	Kind              ArtifactKind  `json:"kind" db:"kind"`
	Version           int           `json:"version" db:"version"`
	SourceImageKey    *string       `json:"sourceImageKey,omitempty" db:"source_image_key"`
	ProcessedImageKey *string       `json:"processedImageKey,omitempty" db:"processed_image_key"`
	GeneratedImageKey *string       `json:"generatedImageKey,omitempty" db:"generated_image_key"`
	Notes             ArtifactNotes `json:"notes" db:"notes"`
	IsSelected        bool          `json:"isSelected" db:"is_selected"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
}

// Subject returns the sibling group this artifact belongs to.
func (a *Artifact) Subject() Subject {
	return Subject{
		GenerationID:  a.GenerationID,
		Kind:          a.SubjectKind,
		EntityID:      a.EntityID,
		ScenePromptID: a.ScenePromptID,
	}
}

// OwnedStorageKeys lists the object-storage keys this artifact owns and that
// must be removed when the artifact row is deleted. The source image of a crop
// belongs to the book configuration, not to the artifact, so it is excluded.
func (a *Artifact) OwnedStorageKeys() []string {
	var keys []string
	if a.ProcessedImageKey != nil && *a.ProcessedImageKey != "" {
		keys = append(keys, *a.ProcessedImageKey)
	}
	if a.GeneratedImageKey != nil && *a.GeneratedImageKey != "" {
		keys = append(keys, *a.GeneratedImageKey)
	}
	return keys
}

// PrimaryStorageKey returns the key of the image this version represents:
// the processed crop for crop artifacts, the stored image otherwise.
func (a *Artifact) PrimaryStorageKey() string {
	if a.Kind == ArtifactCrop && a.ProcessedImageKey != nil {
		return *a.ProcessedImageKey
	}
	if a.GeneratedImageKey != nil {
		return *a.GeneratedImageKey
	}
	return ""
}

// NewCropArtifact builds an unsaved crop-result artifact for the main character.
func NewCropArtifact(generationID uuid.UUID, sourceKey, processedKey string, rect CropRect) *Artifact {
	return &Artifact{
		ID:                uuid.New(),
		GenerationID:      generationID,
		SubjectKind:       SubjectMainCharacter,
		Kind:              ArtifactCrop,
		SourceImageKey:    &sourceKey,
		ProcessedImageKey: &processedKey,
		Notes:             ArtifactNotes{CropRect: &rect},
	}
}

// NewGeneratedArtifact builds an unsaved AI-generated artifact for a subject.
func NewGeneratedArtifact(subject Subject, generatedKey string, notes ArtifactNotes) *Artifact {
	return &Artifact{
		ID:                uuid.New(),
		GenerationID:      subject.GenerationID,
		SubjectKind:       subject.Kind,
		EntityID:          subject.EntityID,
		ScenePromptID:     subject.ScenePromptID,
		Kind:              ArtifactGenerated,
		GeneratedImageKey: &generatedKey,
		Notes:             notes,
	}
}

// NewUploadArtifact builds an unsaved human-supplied artifact for a subject.
// Uploads and AI generations are stored identically; only the absence of a
// generation prompt in the notes distinguishes provenance.
func NewUploadArtifact(subject Subject, storedKey, contentType string) *Artifact {
	return &Artifact{
		ID:                uuid.New(),
		GenerationID:      subject.GenerationID,
		SubjectKind:       subject.Kind,
		EntityID:          subject.EntityID,
		ScenePromptID:     subject.ScenePromptID,
		Kind:              ArtifactUpload,
		GeneratedImageKey: &storedKey,
		Notes:             ArtifactNotes{ContentType: contentType},
	}
}
