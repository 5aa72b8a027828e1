package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookforge/internal/models"
)

// respondError maps service errors onto HTTP status codes. Upstream
// generation failures keep their message so the operator sees what the
// provider said.
func (h *AdminHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": validationErrs})
		return
	}

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrGenerationNotFound),
		errors.Is(err, models.ErrArtifactNotFound),
		errors.Is(err, models.ErrEntityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrMissingPrecondition),
		errors.Is(err, models.ErrEntityNotDeletable),
		errors.Is(err, models.ErrMainCharacterImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrGenerationFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrInternalServer.Error()})
	}
}

// parseUUIDParam reads a path parameter as a UUID, responding 400 itself when
// the value does not parse.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return uuid.Nil, false
	}
	return id, true
}
