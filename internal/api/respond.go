package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/trendulum/trendulum-api-go/pkg/errors"
)

// respondError maps an application error to its HTTP response, keeping the
// {"detail": ...} body shape the frontend expects.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		status := appErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"detail": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}
