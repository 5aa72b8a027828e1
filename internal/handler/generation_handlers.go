package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookforge/internal/models"
)

func (h *AdminHandler) getOrCreateGeneration(c *gin.Context) {
	var req getOrCreateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	gen, err := h.workflow.GetOrCreate(c.Request.Context(), req.BookConfigID, req.OwnerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gen)
}

func (h *AdminHandler) getGeneration(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	gen, err := h.workflow.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gen)
}

func (h *AdminHandler) deleteGeneration(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.workflow.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) completeStep(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req completeStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	gen, err := h.workflow.CompleteStep(c.Request.Context(), id, req.Step)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gen)
}

func (h *AdminHandler) selectArtifact(c *gin.Context) {
	id, ok := parseUUIDParam(c, "artifactId")
	if !ok {
		return
	}
	artifact, err := h.artifacts.SelectVersion(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artifact)
}

func (h *AdminHandler) deleteArtifact(c *gin.Context) {
	id, ok := parseUUIDParam(c, "artifactId")
	if !ok {
		return
	}
	if err := h.artifacts.DeleteVersion(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// redirectToSignedURL resolves a storage key into a short-lived signed URL and
// redirects, so the console never talks to the bucket directly.
func (h *AdminHandler) redirectToSignedURL(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		h.respondError(c, models.ErrInvalidInput)
		return
	}
	url, err := h.artifacts.SignedURLFor(c.Request.Context(), key)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
