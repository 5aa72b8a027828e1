package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookforge/internal/models"
)

func (h *AdminHandler) generateScenePrompts(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	prompts, entities, err := h.prompts.GeneratePrompts(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts, "entities": entities})
}

func (h *AdminHandler) extractCharacters(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	entities, err := h.prompts.ExtractCharacters(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entities": entities})
}

func (h *AdminHandler) importScenePrompts(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req importPromptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	prompts, entities, err := h.prompts.ImportPrompts(c.Request.Context(), id, req.Data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts, "entities": entities})
}

func (h *AdminHandler) listScenePrompts(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	prompts, err := h.prompts.ListScenePrompts(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

func (h *AdminHandler) updateScenePrompt(c *gin.Context) {
	id, ok := parseUUIDParam(c, "promptId")
	if !ok {
		return
	}
	var req updateScenePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	prompt, err := h.prompts.UpdateScenePrompt(c.Request.Context(), id, req.ImagePrompt, req.EntityIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *AdminHandler) listEntities(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	entities, err := h.prompts.ListEntities(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entities": entities})
}

func (h *AdminHandler) addEntity(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req addEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	entity, err := h.prompts.AddEntity(c.Request.Context(), id, req.Name, req.Description,
		models.CharacterType(req.CharacterType), req.ReferencePrompt)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *AdminHandler) deleteEntity(c *gin.Context) {
	id, ok := parseUUIDParam(c, "entityId")
	if !ok {
		return
	}
	if err := h.prompts.DeleteEntity(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
