package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepsCompleted(t *testing.T) {
	sc := NewStepsCompleted()
	require.Len(t, sc, MaxStep)
	for i := MinStep; i <= MaxStep; i++ {
		done, ok := sc[StepKey(i)]
		assert.True(t, ok, "key %s must be present", StepKey(i))
		assert.False(t, done)
	}
}

func TestStepsCompleted_Normalize(t *testing.T) {
	sc := StepsCompleted{"step1": true, "step3": true}
	sc.Normalize()
	require.Len(t, sc, MaxStep)
	assert.True(t, sc["step1"])
	assert.False(t, sc["step2"])
	assert.True(t, sc["step3"])
	assert.False(t, sc["step6"])
}

func TestGeneration_MarkStepComplete(t *testing.T) {
	t.Run("advances when completing the current step", func(t *testing.T) {
		g := &Generation{CurrentStep: 1, StepsCompleted: NewStepsCompleted()}
		require.NoError(t, g.MarkStepComplete(1))
		assert.Equal(t, 2, g.CurrentStep)
		assert.True(t, g.StepsCompleted["step1"])
	})

	t.Run("re-completing an earlier step does not move the pointer back", func(t *testing.T) {
		g := &Generation{CurrentStep: 4, StepsCompleted: NewStepsCompleted()}
		g.StepsCompleted["step1"] = true
		g.StepsCompleted["step2"] = true
		g.StepsCompleted["step3"] = true

		require.NoError(t, g.MarkStepComplete(2))
		assert.Equal(t, 4, g.CurrentStep)
		assert.True(t, g.StepsCompleted["step2"])
	})

	t.Run("completing a later step flags it without advancing", func(t *testing.T) {
		g := &Generation{CurrentStep: 2, StepsCompleted: NewStepsCompleted()}
		require.NoError(t, g.MarkStepComplete(5))
		assert.Equal(t, 2, g.CurrentStep)
		assert.True(t, g.StepsCompleted["step5"])
	})

	t.Run("last step stays at the last step", func(t *testing.T) {
		g := &Generation{CurrentStep: MaxStep, StepsCompleted: NewStepsCompleted()}
		require.NoError(t, g.MarkStepComplete(MaxStep))
		assert.Equal(t, MaxStep, g.CurrentStep)
		assert.True(t, g.StepsCompleted[StepKey(MaxStep)])
	})

	t.Run("rejects out-of-range steps", func(t *testing.T) {
		g := &Generation{CurrentStep: 1, StepsCompleted: NewStepsCompleted()}
		assert.ErrorIs(t, g.MarkStepComplete(0), ErrInvalidInput)
		assert.ErrorIs(t, g.MarkStepComplete(7), ErrInvalidInput)
	})

	t.Run("initializes a nil completion map", func(t *testing.T) {
		g := &Generation{CurrentStep: 1}
		require.NoError(t, g.MarkStepComplete(1))
		assert.Len(t, g.StepsCompleted, MaxStep)
		assert.True(t, g.StepsCompleted["step1"])
	})
}
