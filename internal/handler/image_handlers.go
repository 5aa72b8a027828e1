package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *AdminHandler) generateEntityReference(c *gin.Context) {
	id, ok := parseUUIDParam(c, "entityId")
	if !ok {
		return
	}
	var req generateEntityReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	artifact, err := h.references.GenerateSingle(c.Request.Context(), id, req.CustomPrompt)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artifact)
}

func (h *AdminHandler) generateAllReferences(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	artifacts, err := h.references.GenerateAll(c.Request.Context(), id)
	if err != nil && len(artifacts) == 0 {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"versions": artifacts}
	if err != nil {
		// Partial success: report what failed alongside the produced versions.
		resp["errors"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) uploadEntityReference(c *gin.Context) {
	id, ok := parseUUIDParam(c, "entityId")
	if !ok {
		return
	}
	data, contentType, err := readUploadedFile(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	artifact, err := h.references.UploadVersion(c.Request.Context(), id, data, contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artifact)
}

func (h *AdminHandler) listEntityVersions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "entityId")
	if !ok {
		return
	}
	artifacts, err := h.references.ListVersions(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": artifacts})
}

func (h *AdminHandler) generateSceneImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "promptId")
	if !ok {
		return
	}
	artifact, err := h.scenes.GenerateScene(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artifact)
}

func (h *AdminHandler) generateAllScenes(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	artifacts, err := h.scenes.GenerateAllScenes(c.Request.Context(), id)
	if err != nil && len(artifacts) == 0 {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"versions": artifacts}
	if err != nil {
		resp["errors"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) listSceneVersions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "promptId")
	if !ok {
		return
	}
	artifacts, err := h.scenes.ListVersions(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": artifacts})
}
