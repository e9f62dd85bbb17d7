package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aremaru/backend/internal/apperr"
)

// writeError maps the error taxonomy onto HTTP statuses. Validation
// messages are safe to surface; everything else gets a generic body.
func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": "conflicting write, please reload and retry"})
	default:
		var te *apperr.TransientError
		if errors.As(err, &te) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
