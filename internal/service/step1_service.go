package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	// Register decoders for the formats customers upload.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/client"
	"bookforge/internal/models"
	"bookforge/internal/repository"
	"bookforge/internal/storage"
)

// Step1Service produces main-character image versions: crops of the
// customer's uploaded photos and AI-generated stylized references.
type Step1Service struct {
	generations repository.GenerationRepository
	artifacts   repository.ArtifactRepository
	store       storage.ArtifactStore
	images      ImageClient
	books       client.BookConfigClient
	prompts     *PromptProvider
	logger      *zap.Logger
}

// NewStep1Service creates the stage-1 service.
func NewStep1Service(
	generations repository.GenerationRepository,
	artifacts repository.ArtifactRepository,
	store storage.ArtifactStore,
	images ImageClient,
	books client.BookConfigClient,
	prompts *PromptProvider,
	logger *zap.Logger,
) *Step1Service {
	return &Step1Service{
		generations: generations,
		artifacts:   artifacts,
		store:       store,
		images:      images,
		books:       books,
		prompts:     prompts,
		logger:      logger.Named("Step1Service"),
	}
}

// ListSourceImages returns the storage keys of the customer's originally
// uploaded photos, the candidates for cropping.
func (s *Step1Service) ListSourceImages(ctx context.Context, generationID uuid.UUID) ([]string, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	return s.books.GetUploadedImageKeys(ctx, gen.BookConfigID)
}

// CropAndVersion applies a pixel-rectangle crop to a source image and stores
// the result as a new version for the main character. The rect arrives in
// source-image natural pixel coordinates (the UI converts from on-screen
// scaled coordinates). The new version is not auto-selected.
func (s *Step1Service) CropAndVersion(ctx context.Context, generationID uuid.UUID, sourceKey string, rect models.CropRect) (*models.Artifact, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if sourceKey == "" {
		return nil, fmt.Errorf("%w: sourceImageKey is required", models.ErrInvalidInput)
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil, fmt.Errorf("%w: crop rect must have positive width and height", models.ErrInvalidInput)
	}

	sourceData, err := s.store.Download(ctx, sourceKey)
	if err != nil {
		return nil, err
	}

	croppedData, err := cropImage(sourceData, rect)
	if err != nil {
		return nil, err
	}

	processedKey := fmt.Sprintf("generations/%s/step1/crop-%s.png", gen.ID, uuid.New())
	if err := s.store.Upload(ctx, processedKey, croppedData, "image/png"); err != nil {
		return nil, err
	}

	artifact := models.NewCropArtifact(gen.ID, sourceKey, processedKey, rect)
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}
	artifactsCreated.WithLabelValues(string(models.SubjectMainCharacter), string(models.ArtifactCrop)).Inc()

	s.logger.Info("Crop version created",
		zap.String("generation_id", gen.ID.String()),
		zap.String("artifact_id", artifact.ID.String()),
		zap.Int("version", artifact.Version))
	return artifact, nil
}

// GenerateReference sends the chosen crops/uploads plus a prompt to the image
// service and stores the result as a new main-character version. The notes
// record which input keys were used so the UI can show them later. Not
// auto-selected; upstream errors are surfaced verbatim with no retry.
func (s *Step1Service) GenerateReference(ctx context.Context, generationID uuid.UUID, imageKeys []string, systemPrompt, userPrompt string) (*models.Artifact, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if len(imageKeys) == 0 {
		return nil, fmt.Errorf("%w: at least one reference image key is required", models.ErrInvalidInput)
	}

	references := make([][]byte, 0, len(imageKeys))
	for _, key := range imageKeys {
		data, err := s.store.Download(ctx, key)
		if err != nil {
			return nil, err
		}
		references = append(references, data)
	}

	if userPrompt == "" {
		userPrompt, err = s.prompts.Render(PromptMainReference, map[string]string{"Name": "the child"})
		if err != nil {
			return nil, err
		}
	}
	prompt := strings.TrimSpace(systemPrompt + "\n\n" + userPrompt)

	imageData, err := s.images.Generate(ctx, prompt, references)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	generatedKey := fmt.Sprintf("generations/%s/step1/ref-%s.png", gen.ID, uuid.New())
	if err := s.store.Upload(ctx, generatedKey, imageData, "image/png"); err != nil {
		return nil, err
	}

	artifact := models.NewGeneratedArtifact(models.MainCharacterSubject(gen.ID), generatedKey, models.ArtifactNotes{
		ReferenceImageKeys: imageKeys,
		SystemPrompt:       systemPrompt,
		UserPrompt:         userPrompt,
	})
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}
	artifactsCreated.WithLabelValues(string(models.SubjectMainCharacter), string(models.ArtifactGenerated)).Inc()

	s.logger.Info("Main character reference generated",
		zap.String("generation_id", gen.ID.String()),
		zap.String("artifact_id", artifact.ID.String()),
		zap.Int("version", artifact.Version))
	return artifact, nil
}

// UploadVersion stores a human-supplied image as a main-character version.
func (s *Step1Service) UploadVersion(ctx context.Context, generationID uuid.UUID, data []byte, contentType string) (*models.Artifact, error) {
	gen, err := s.generations.GetByID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: uploaded file is empty", models.ErrInvalidInput)
	}

	key := fmt.Sprintf("generations/%s/step1/upload-%s%s", gen.ID, uuid.New(), extensionFor(contentType))
	if err := s.store.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	artifact := models.NewUploadArtifact(models.MainCharacterSubject(gen.ID), key, contentType)
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}
	artifactsCreated.WithLabelValues(string(models.SubjectMainCharacter), string(models.ArtifactUpload)).Inc()
	return artifact, nil
}

// ListVersions returns every main-character version, oldest first.
func (s *Step1Service) ListVersions(ctx context.Context, generationID uuid.UUID) ([]models.Artifact, error) {
	if _, err := s.generations.GetByID(ctx, generationID); err != nil {
		return nil, err
	}
	return s.artifacts.ListBySubject(ctx, models.MainCharacterSubject(generationID))
}

// cropImage decodes, crops and re-encodes an image. The crop rect is clamped
// to the image bounds; an empty intersection is an input error.
func cropImage(data []byte, rect models.CropRect) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode source image: %v", models.ErrInvalidInput, err)
	}

	bounds := src.Bounds()
	x, y, w, h := rect.PixelRect(bounds.Dx(), bounds.Dy())
	cropBounds := image.Rect(x, y, x+w, y+h).Add(bounds.Min).Intersect(bounds)
	if cropBounds.Empty() {
		return nil, fmt.Errorf("%w: crop rect is outside the image bounds", models.ErrInvalidInput)
	}

	dst := image.NewRGBA(image.Rect(0, 0, cropBounds.Dx(), cropBounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, cropBounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}
	return buf.Bytes(), nil
}

// extensionFor maps common upload content types to file extensions.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
