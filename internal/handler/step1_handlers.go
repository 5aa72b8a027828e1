package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookforge/internal/models"
)

// maxUploadBytes caps multipart uploads at 20 MiB.
const maxUploadBytes = 20 << 20

func (h *AdminHandler) listSourceImages(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	keys, err := h.step1.ListSourceImages(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageKeys": keys})
}

func (h *AdminHandler) cropSourceImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req cropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	artifact, err := h.step1.CropAndVersion(c.Request.Context(), id, req.SourceImageKey, req.Rect)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artifact)
}

func (h *AdminHandler) generateMainReference(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req generateMainReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	artifact, err := h.step1.GenerateReference(c.Request.Context(), id, req.ImageKeys, req.SystemPrompt, req.UserPrompt)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artifact)
}

func (h *AdminHandler) uploadMainReference(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	data, contentType, err := readUploadedFile(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	artifact, err := h.step1.UploadVersion(c.Request.Context(), id, data, contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artifact)
}

func (h *AdminHandler) listMainVersions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	artifacts, err := h.step1.ListVersions(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": artifacts})
}

// readUploadedFile pulls the "file" part out of a multipart form.
func readUploadedFile(c *gin.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", models.ErrInvalidInput
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, "", models.ErrInvalidInput
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxUploadBytes {
		return nil, "", models.ErrInvalidInput
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
