package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"bookforge/internal/database"
	"bookforge/internal/models"
	"bookforge/internal/repository"
)

// RepositoryIntegrationSuite runs the pg repositories against a real
// PostgreSQL started in a container, with the embedded migrations applied.
type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pool        *pgxpool.Pool
	logger      *zap.Logger

	generations repository.GenerationRepository
	artifacts   repository.ArtifactRepository
	entities    repository.EntityRepository
	scenes      repository.ScenePromptRepository
	contents    repository.ContentRepository
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = zap.NewNop()

	var err error
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("bookforge_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "failed to start postgres container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "failed to get postgres connection string")

	s.pool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "failed to connect to test postgres")

	require.NoError(s.T(), database.NewMigrator(s.pool).Up(s.ctx), "failed to apply migrations")

	s.generations = repository.NewPgGenerationRepository(s.pool, s.logger)
	s.artifacts = repository.NewPgArtifactRepository(s.pool, s.logger)
	s.entities = repository.NewPgEntityRepository(s.pool, s.logger)
	s.scenes = repository.NewPgScenePromptRepository(s.pool, s.logger)
	s.contents = repository.NewPgContentRepository(s.pool, s.logger)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	// Everything hangs off generations via ON DELETE CASCADE.
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE generations CASCADE")
	require.NoError(s.T(), err, "failed to truncate generations")
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) newGeneration() *models.Generation {
	gen, err := s.generations.GetOrCreate(s.ctx, uuid.New(), uuid.New())
	require.NoError(s.T(), err)
	return gen
}

func (s *RepositoryIntegrationSuite) TestGenerationLifecycle() {
	t := s.T()
	bookConfigID := uuid.New()
	ownerID := uuid.New()

	gen, err := s.generations.GetOrCreate(s.ctx, bookConfigID, ownerID)
	require.NoError(t, err)
	require.Equal(t, models.MinStep, gen.CurrentStep)
	require.False(t, gen.StepsCompleted[models.StepKey(1)])

	// Same book configuration resolves to the same aggregate.
	again, err := s.generations.GetOrCreate(s.ctx, bookConfigID, ownerID)
	require.NoError(t, err)
	require.Equal(t, gen.ID, again.ID)

	require.NoError(t, gen.MarkStepComplete(1))
	require.NoError(t, s.generations.UpdateProgress(s.ctx, gen.ID, gen.CurrentStep, gen.StepsCompleted))

	loaded, err := s.generations.GetByID(s.ctx, gen.ID)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.CurrentStep)
	require.True(t, loaded.StepsCompleted[models.StepKey(1)])
	require.False(t, loaded.StepsCompleted[models.StepKey(2)])

	require.NoError(t, s.generations.Delete(s.ctx, gen.ID))
	_, err = s.generations.GetByID(s.ctx, gen.ID)
	require.ErrorIs(t, err, models.ErrGenerationNotFound)
}

func (s *RepositoryIntegrationSuite) TestGenerationDeleteCascades() {
	t := s.T()
	gen := s.newGeneration()

	entity, err := s.entities.EnsureMainCharacter(s.ctx, gen.ID, "Mila")
	require.NoError(t, err)

	artifact := models.NewGeneratedArtifact(models.EntitySubject(gen.ID, entity.ID), "refs/mila.png", models.ArtifactNotes{})
	require.NoError(t, s.artifacts.Create(s.ctx, artifact))

	require.NoError(t, s.generations.Delete(s.ctx, gen.ID))

	_, err = s.entities.GetByID(s.ctx, entity.ID)
	require.ErrorIs(t, err, models.ErrEntityNotFound)
	_, err = s.artifacts.GetByID(s.ctx, artifact.ID)
	require.ErrorIs(t, err, models.ErrArtifactNotFound)
}

func (s *RepositoryIntegrationSuite) TestArtifactVersioningAndSelection() {
	t := s.T()
	gen := s.newGeneration()
	subject := models.MainCharacterSubject(gen.ID)

	_, err := s.artifacts.GetSelected(s.ctx, subject)
	require.ErrorIs(t, err, models.ErrNotFound, "fresh subject has no selection")

	first := models.NewGeneratedArtifact(subject, "main/v1.png", models.ArtifactNotes{})
	require.NoError(t, s.artifacts.Create(s.ctx, first))
	require.Equal(t, 1, first.Version)
	require.False(t, first.IsSelected)

	second := models.NewGeneratedArtifact(subject, "main/v2.png", models.ArtifactNotes{})
	require.NoError(t, s.artifacts.Create(s.ctx, second))
	require.Equal(t, 2, second.Version)

	selected, err := s.artifacts.Select(s.ctx, first.ID)
	require.NoError(t, err)
	require.True(t, selected.IsSelected)

	// Selecting a sibling clears the previous selection.
	selected, err = s.artifacts.Select(s.ctx, second.ID)
	require.NoError(t, err)
	require.True(t, selected.IsSelected)

	current, err := s.artifacts.GetSelected(s.ctx, subject)
	require.NoError(t, err)
	require.Equal(t, second.ID, current.ID)

	reloaded, err := s.artifacts.GetByID(s.ctx, first.ID)
	require.NoError(t, err)
	require.False(t, reloaded.IsSelected)

	versions, err := s.artifacts.ListBySubject(s.ctx, subject)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	require.NoError(t, s.artifacts.Delete(s.ctx, second.ID))
	_, err = s.artifacts.GetSelected(s.ctx, subject)
	require.ErrorIs(t, err, models.ErrNotFound, "deleting the selected version leaves none selected")
}

func (s *RepositoryIntegrationSuite) TestArtifactVersionsArePerSubject() {
	t := s.T()
	gen := s.newGeneration()

	entityA, err := s.entities.EnsureMainCharacter(s.ctx, gen.ID, "Mila")
	require.NoError(t, err)
	entityB := &models.Entity{
		GenerationID:  gen.ID,
		Name:          "Fox",
		CharacterType: models.CharacterTypeCharacter,
		IsCustom:      true,
	}
	require.NoError(t, s.entities.Create(s.ctx, entityB))

	forA := models.NewGeneratedArtifact(models.EntitySubject(gen.ID, entityA.ID), "refs/a1.png", models.ArtifactNotes{})
	require.NoError(t, s.artifacts.Create(s.ctx, forA))
	forB := models.NewGeneratedArtifact(models.EntitySubject(gen.ID, entityB.ID), "refs/b1.png", models.ArtifactNotes{})
	require.NoError(t, s.artifacts.Create(s.ctx, forB))

	require.Equal(t, 1, forA.Version)
	require.Equal(t, 1, forB.Version, "version counters are per subject, not per generation")

	all, err := s.artifacts.ListByGeneration(s.ctx, gen.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func (s *RepositoryIntegrationSuite) TestEnsureMainCharacterIsIdempotent() {
	t := s.T()
	gen := s.newGeneration()

	first, err := s.entities.EnsureMainCharacter(s.ctx, gen.ID, "Mila")
	require.NoError(t, err)
	require.True(t, first.IsMainCharacter)

	again, err := s.entities.EnsureMainCharacter(s.ctx, gen.ID, "Renamed")
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID, "second ensure returns the existing row")

	main, err := s.entities.GetMainCharacter(s.ctx, gen.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, main.ID)
}

func (s *RepositoryIntegrationSuite) TestReplaceExtractedKeepsMainAndCustom() {
	t := s.T()
	gen := s.newGeneration()

	main, err := s.entities.EnsureMainCharacter(s.ctx, gen.ID, "Mila")
	require.NoError(t, err)

	custom := &models.Entity{
		GenerationID:  gen.ID,
		Name:          "Grandma",
		CharacterType: models.CharacterTypeCharacter,
		IsCustom:      true,
	}
	require.NoError(t, s.entities.Create(s.ctx, custom))

	firstPass := []models.Entity{
		{GenerationID: gen.ID, Name: "Fox", CharacterType: models.CharacterTypeCharacter},
		{GenerationID: gen.ID, Name: "Lantern", CharacterType: models.CharacterTypeObject},
	}
	_, err = s.entities.ReplaceExtracted(s.ctx, gen.ID, firstPass)
	require.NoError(t, err)

	secondPass := []models.Entity{
		{GenerationID: gen.ID, Name: "Owl", CharacterType: models.CharacterTypeCharacter},
	}
	_, err = s.entities.ReplaceExtracted(s.ctx, gen.ID, secondPass)
	require.NoError(t, err)

	all, err := s.entities.ListByGeneration(s.ctx, gen.ID)
	require.NoError(t, err)

	names := make(map[string]models.Entity, len(all))
	for _, e := range all {
		names[e.Name] = e
	}
	require.Len(t, all, 3)
	require.Contains(t, names, "Owl")
	require.NotContains(t, names, "Fox", "extracted entities from the previous pass are replaced")
	require.Equal(t, main.ID, names["Mila"].ID)
	require.Equal(t, custom.ID, names["Grandma"].ID)
}

func (s *RepositoryIntegrationSuite) TestScenePromptReplaceAndUpdate() {
	t := s.T()
	gen := s.newGeneration()

	entity, err := s.entities.EnsureMainCharacter(s.ctx, gen.ID, "Mila")
	require.NoError(t, err)

	created, err := s.scenes.Replace(s.ctx, gen.ID, []models.ScenePrompt{
		{GenerationID: gen.ID, SceneType: models.SceneTypeCover, SceneNumber: 0, ImagePrompt: "cover art", EntityIDs: []uuid.UUID{entity.ID}},
		{GenerationID: gen.ID, SceneType: models.SceneTypeScene, SceneNumber: 1, ImagePrompt: "scene one", EntityIDs: []uuid.UUID{entity.ID}},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	prompt, err := s.scenes.GetByID(s.ctx, created[1].ID)
	require.NoError(t, err)
	require.Equal(t, "scene one", prompt.ImagePrompt)
	require.Equal(t, []uuid.UUID{entity.ID}, prompt.EntityIDs)

	prompt.ImagePrompt = "scene one, at dusk"
	prompt.EntityIDs = nil
	require.NoError(t, s.scenes.Update(s.ctx, prompt))

	reloaded, err := s.scenes.GetByID(s.ctx, prompt.ID)
	require.NoError(t, err)
	require.Equal(t, "scene one, at dusk", reloaded.ImagePrompt)
	require.Empty(t, reloaded.EntityIDs)

	// Replace swaps the full set.
	replaced, err := s.scenes.Replace(s.ctx, gen.ID, []models.ScenePrompt{
		{GenerationID: gen.ID, SceneType: models.SceneTypeScene, SceneNumber: 1, ImagePrompt: "rewritten"},
	})
	require.NoError(t, err)
	require.Len(t, replaced, 1)

	listed, err := s.scenes.ListByGeneration(s.ctx, gen.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	_, err = s.scenes.GetByID(s.ctx, created[0].ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func (s *RepositoryIntegrationSuite) TestContentUpserts() {
	t := s.T()
	gen := s.newGeneration()

	_, err := s.contents.GetCorrected(s.ctx, gen.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	story := models.StoryContent{
		Title: "Mila and the Fox",
		Scenes: []models.StoryScene{
			{Number: 1, Text: "Once upon a time."},
		},
	}

	require.NoError(t, s.contents.UpsertManual(s.ctx, &models.ManualEdit{GenerationID: gen.ID, Content: story}))
	manual, err := s.contents.GetManual(s.ctx, gen.ID)
	require.NoError(t, err)
	require.Equal(t, "Mila and the Fox", manual.Content.Title)

	require.NoError(t, s.contents.UpsertCorrected(s.ctx, &models.CorrectedContent{
		GenerationID: gen.ID,
		Content:      story,
		ModelUsed:    "gpt-4o",
	}))

	story.Title = "Mila and the Fox, Revised"
	require.NoError(t, s.contents.UpsertCorrected(s.ctx, &models.CorrectedContent{
		GenerationID: gen.ID,
		Content:      story,
		ModelUsed:    "gpt-4o",
	}))

	corrected, err := s.contents.GetCorrected(s.ctx, gen.ID)
	require.NoError(t, err)
	require.Equal(t, "Mila and the Fox, Revised", corrected.Content.Title)
	require.Equal(t, "gpt-4o", corrected.ModelUsed)
}

func (s *RepositoryIntegrationSuite) TestGetByIDUnknownGeneration() {
	_, err := s.generations.GetByID(s.ctx, uuid.New())
	require.True(s.T(), errors.Is(err, models.ErrGenerationNotFound))
}
