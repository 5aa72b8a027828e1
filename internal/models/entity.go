package models

import (
	"time"

	"github.com/google/uuid"
)

// CharacterType distinguishes story characters from objects.
type CharacterType string

const (
	CharacterTypeCharacter CharacterType = "character"
	CharacterTypeObject    CharacterType = "object"
)

// Entity is a character or object referenced by the story, either extracted
// automatically from stage-3 output or added manually by an operator.
type Entity struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	GenerationID    uuid.UUID     `json:"generationId" db:"generation_id"`
	Name            string        `json:"name" db:"name"`
	Description     string        `json:"description" db:"description"`
	CharacterType   CharacterType `json:"characterType" db:"character_type"`
	IsMainCharacter bool          `json:"isMainCharacter" db:"is_main_character"`
	IsCustom        bool          `json:"isCustom" db:"is_custom"`
	ReferencePrompt string        `json:"referencePrompt" db:"reference_prompt"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
}

// Deletable reports whether an operator may delete this entity. The main
// character and extracted entities are part of the story canon and stay.
func (e *Entity) Deletable() bool {
	return e.IsCustom && !e.IsMainCharacter
}
