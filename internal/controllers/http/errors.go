package http

import (
	"errors"
	"net/http"

	"store-service/internal/domain"
	"store-service/internal/services"

	"github.com/gin-gonic/gin"
)

// writeError translates service errors into the response taxonomy:
// validation 400, not found 404, denied 403, in use 409, rest 500.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"errors": ve.Fields})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrNotEntitled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	case errors.Is(err, domain.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "resource is in use"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
