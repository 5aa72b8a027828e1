package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentSource names which document a stage-2 run operates on. Passed
// explicitly by the caller instead of being inferred from a chain of
// null-checks so precedence is never ambiguous.
type ContentSource string

const (
	ContentSourceOriginal  ContentSource = "original"
	ContentSourceManual    ContentSource = "manual"
	ContentSourceCorrected ContentSource = "corrected"
)

// ModelUsedManual marks corrected content that was promoted without an AI call.
const ModelUsedManual = "manual"

// StoryScene is one scene of the story text.
type StoryScene struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// StoryContent is the story document shape shared by the original book
// content, manual edits and the corrected result.
type StoryContent struct {
	Title              string       `json:"title"`
	ShortDescription   string       `json:"shortDescription"`
	Scenes             []StoryScene `json:"scenes"`
	MotivationalEnding string       `json:"motivationalEnding,omitempty"`
}

// CorrectedContent is the single proofread story document per generation.
// Re-running correction replaces it; it is never versioned. All downstream
// stages read story text from here.
type CorrectedContent struct {
	GenerationID uuid.UUID    `json:"generationId" db:"generation_id"`
	Content      StoryContent `json:"content" db:"content"`
	ModelUsed    string       `json:"modelUsed" db:"model_used"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// ManualEdit is the pre-correction staging document. It exists only until
// correction runs or is skipped; afterwards it is logically superseded.
type ManualEdit struct {
	GenerationID uuid.UUID    `json:"generationId" db:"generation_id"`
	Content      StoryContent `json:"content" db:"content"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}
