package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookforge/internal/models"
)

func (h *AdminHandler) getDefaultPrompt(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req defaultPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	prompts, err := h.proofread.LoadDefaultPrompt(c.Request.Context(), id, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

func (h *AdminHandler) proofreadContent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req proofreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	source := models.ContentSource(req.Source)
	if source == "" {
		source = models.ContentSourceOriginal
	}
	corrected, err := h.proofread.Proofread(c.Request.Context(), id, req.SystemPrompt, req.UserPrompt, source)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, corrected)
}

func (h *AdminHandler) saveManualEdit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req manualEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.proofread.SaveManualEdit(c.Request.Context(), id, req.Content); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) skipProofread(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	corrected, err := h.proofread.Skip(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, corrected)
}

func (h *AdminHandler) getContent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	corrected, err := h.proofread.GetContent(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, corrected)
}
