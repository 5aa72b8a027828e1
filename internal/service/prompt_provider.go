package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"go.uber.org/zap"
)

// Prompt template file names under the prompts directory.
const (
	PromptProofreadSystem = "proofread_system.md"
	PromptProofreadUser   = "proofread_user.md"
	PromptScenesSystem    = "scene_prompts_system.md"
	PromptScenesUser      = "scene_prompts_user.md"
	PromptExtractSystem   = "extract_characters_system.md"
	PromptExtractUser     = "extract_characters_user.md"
	PromptMainReference   = "main_reference.md"
	PromptEntityReference = "entity_reference.md"
)

// PromptProvider loads prompt templates from disk and renders them against
// stage data. Parsed templates are cached for the life of the process;
// editing a prompt file requires a restart.
type PromptProvider struct {
	dir       string
	cacheLock sync.RWMutex
	cache     map[string]*template.Template
	logger    *zap.Logger
}

// NewPromptProvider creates a provider over the given directory.
func NewPromptProvider(dir string, logger *zap.Logger) (*PromptProvider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("prompts directory '%s' is not readable: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prompts path '%s' is not a directory", dir)
	}
	return &PromptProvider{
		dir:    dir,
		cache:  make(map[string]*template.Template),
		logger: logger.Named("PromptProvider"),
	}, nil
}

// Render executes the named template with the given data. Pure with respect
// to application state; callable repeatedly.
func (p *PromptProvider) Render(name string, data any) (string, error) {
	tmpl, err := p.load(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt '%s': %w", name, err)
	}
	return buf.String(), nil
}

func (p *PromptProvider) load(name string) (*template.Template, error) {
	p.cacheLock.RLock()
	tmpl, ok := p.cache[name]
	p.cacheLock.RUnlock()
	if ok {
		return tmpl, nil
	}

	path := filepath.Join(p.dir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		p.logger.Error("Failed to read prompt file", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to read prompt file '%s': %w", path, err)
	}
	tmpl, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template '%s': %w", name, err)
	}

	p.cacheLock.Lock()
	p.cache[name] = tmpl
	p.cacheLock.Unlock()
	p.logger.Debug("Prompt template loaded", zap.String("name", name))
	return tmpl, nil
}
