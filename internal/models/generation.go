package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MinStep and MaxStep bound the workflow. Steps are numbered 1..6:
// 1 photo crop, 2 proofreading, 3 scene prompts, 4/5 reference images, 6 scene images.
const (
	MinStep = 1
	MaxStep = 6
)

// StepsCompleted maps step keys ("step1".."step6") to completion flags.
// All six keys are always present.
type StepsCompleted map[string]bool

// NewStepsCompleted returns the initial all-false completion map.
func NewStepsCompleted() StepsCompleted {
	sc := make(StepsCompleted, MaxStep)
	for i := MinStep; i <= MaxStep; i++ {
		sc[StepKey(i)] = false
	}
	return sc
}

// StepKey returns the jsonb key for a step number.
func StepKey(step int) string {
	return fmt.Sprintf("step%d", step)
}

// IsValidStep reports whether step is one of the six workflow stages.
func IsValidStep(step int) bool {
	return step >= MinStep && step <= MaxStep
}

// Normalize fills in any missing step keys so the six-key invariant holds
// even for rows written before a step was introduced.
func (sc StepsCompleted) Normalize() {
	for i := MinStep; i <= MaxStep; i++ {
		key := StepKey(i)
		if _, ok := sc[key]; !ok {
			sc[key] = false
		}
	}
}

// Generation is the per-book-configuration aggregate root tracking progress
// through the six workflow stages. Exactly one exists per book configuration.
type Generation struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	BookConfigID   uuid.UUID      `json:"bookConfigId" db:"book_config_id"`
	OwnerID        uuid.UUID      `json:"ownerId" db:"owner_id"`
	CurrentStep    int            `json:"currentStep" db:"current_step"`
	StepsCompleted StepsCompleted `json:"stepsCompleted" db:"steps_completed"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

// MarkStepComplete flags the step as done and advances the current step when
// the completed step is the one the operator is on. Completing an already
// passed step never moves the pointer back.
func (g *Generation) MarkStepComplete(step int) error {
	if !IsValidStep(step) {
		return fmt.Errorf("%w: step must be between %d and %d", ErrInvalidInput, MinStep, MaxStep)
	}
	if g.StepsCompleted == nil {
		g.StepsCompleted = NewStepsCompleted()
	}
	g.StepsCompleted[StepKey(step)] = true
	if g.CurrentStep == step && step < MaxStep {
		g.CurrentStep = step + 1
	}
	return nil
}
