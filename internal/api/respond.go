package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/veriscope/veriscope-api/internal/errors"
)

// writeError maps a service error onto the HTTP response. Application errors
// carry their own status; anything else is a 500 with a generic body so
// internals never leak to clients.
func writeError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus(), gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  apperrors.ErrCodeInternalError,
	})
}
