package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amrit-pandey/airbnb-clone/internal/common"
)

// writeError maps a service error to a deterministic HTTP response. Every
// failed check gets an answer; nothing falls through silently.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid email or password"})
	case errors.Is(err, common.ErrConflict):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "already registered"})
	case errors.Is(err, common.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, common.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "listing was modified concurrently"})
	default:
		s.logger.Error(c.Request.Context(), "internal error", "err", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
