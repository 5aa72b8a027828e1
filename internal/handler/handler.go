package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookforge/internal/service"
)

// AdminHandler exposes the generation workflow over HTTP for the admin
// console. Every /api route sits behind the admin JWT guard.
type AdminHandler struct {
	workflow   *service.WorkflowService
	artifacts  *service.ArtifactService
	step1      *service.Step1Service
	proofread  *service.ProofreadService
	prompts    *service.PromptGenService
	references *service.ReferenceService
	scenes     *service.SceneService
	jwtSecret  string
	logger     *zap.Logger
}

// NewAdminHandler creates the HTTP handler.
func NewAdminHandler(
	workflow *service.WorkflowService,
	artifacts *service.ArtifactService,
	step1 *service.Step1Service,
	proofread *service.ProofreadService,
	prompts *service.PromptGenService,
	references *service.ReferenceService,
	scenes *service.SceneService,
	jwtSecret string,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		workflow:   workflow,
		artifacts:  artifacts,
		step1:      step1,
		proofread:  proofread,
		prompts:    prompts,
		references: references,
		scenes:     scenes,
		jwtSecret:  jwtSecret,
		logger:     logger.Named("AdminHandler"),
	}
}

// RegisterRoutes wires every API route onto the router. /healthz and /metrics
// are registered by the caller outside the auth guard.
func (h *AdminHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.Use(h.authMiddleware)

	api.POST("/generations", h.getOrCreateGeneration)
	api.GET("/generations/:id", h.getGeneration)
	api.DELETE("/generations/:id", h.deleteGeneration)
	api.POST("/generations/:id/complete-step", h.completeStep)

	api.GET("/generations/:id/step1/source-images", h.listSourceImages)
	api.POST("/generations/:id/step1/crop", h.cropSourceImage)
	api.POST("/generations/:id/step1/generate", h.generateMainReference)
	api.POST("/generations/:id/step1/upload", h.uploadMainReference)
	api.GET("/generations/:id/step1/versions", h.listMainVersions)

	api.POST("/artifacts/:artifactId/select", h.selectArtifact)
	api.DELETE("/artifacts/:artifactId", h.deleteArtifact)

	api.GET("/generations/:id/step2/default-prompt", h.getDefaultPrompt)
	api.POST("/generations/:id/step2/proofread", h.proofreadContent)
	api.PUT("/generations/:id/step2/content", h.saveManualEdit)
	api.POST("/generations/:id/step2/skip", h.skipProofread)
	api.GET("/generations/:id/step2/content", h.getContent)

	api.POST("/generations/:id/step3/generate", h.generateScenePrompts)
	api.POST("/generations/:id/step3/extract-characters", h.extractCharacters)
	api.POST("/generations/:id/step3/import", h.importScenePrompts)
	api.GET("/generations/:id/step3/prompts", h.listScenePrompts)
	api.PATCH("/scene-prompts/:promptId", h.updateScenePrompt)

	api.GET("/generations/:id/entities", h.listEntities)
	api.POST("/generations/:id/entities", h.addEntity)
	api.DELETE("/entities/:entityId", h.deleteEntity)

	api.POST("/entities/:entityId/reference/generate", h.generateEntityReference)
	api.POST("/generations/:id/references/generate-all", h.generateAllReferences)
	api.POST("/entities/:entityId/reference/upload", h.uploadEntityReference)
	api.GET("/entities/:entityId/reference/versions", h.listEntityVersions)

	api.POST("/scene-prompts/:promptId/image/generate", h.generateSceneImage)
	api.POST("/generations/:id/step6/generate-all", h.generateAllScenes)
	api.GET("/scene-prompts/:promptId/image/versions", h.listSceneVersions)

	api.GET("/files/*key", h.redirectToSignedURL)
}
