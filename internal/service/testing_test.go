package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookforge/internal/service"
)

// testPromptProvider builds a provider over a temp directory populated with
// minimal templates for every prompt the services render.
func testPromptProvider(t *testing.T) *service.PromptProvider {
	t.Helper()
	dir := t.TempDir()
	templates := map[string]string{
		service.PromptProofreadSystem: "You proofread children's stories for ages {{.AgeHint}}.",
		service.PromptProofreadUser:   "Proofread the following story document.",
		service.PromptScenesSystem:    "You produce scene image prompts and an entity list as JSON.",
		service.PromptScenesUser:      "Generate scene prompts for the following story.",
		service.PromptExtractSystem:   "You extract characters and objects as JSON.",
		service.PromptExtractUser:     "Extract entities from the following story.",
		service.PromptMainReference:   "A storybook illustration of {{.Name}}.",
		service.PromptEntityReference: "A storybook illustration of {{.Name}}: {{.Description}}.",
	}
	for name, body := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	provider, err := service.NewPromptProvider(dir, zap.NewNop())
	require.NoError(t, err)
	return provider
}
