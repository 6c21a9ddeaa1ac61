package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gravitational/trace"
	"go.uber.org/zap"

	"github.com/upstat-dev/upstat/pkg/logger"
)

// respondError maps the error taxonomy onto HTTP statuses. Validation
// failures are 400, missing resources 404, and both state conflicts and
// uniqueness conflicts 409.
func respondError(ctx *gin.Context, err error) {
	switch {
	case trace.IsBadParameter(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": trace.UserMessage(err)})
	case trace.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": trace.UserMessage(err)})
	case trace.IsAlreadyExists(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": trace.UserMessage(err)})
	case trace.IsCompareFailed(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": trace.UserMessage(err)})
	case trace.IsAccessDenied(err):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": trace.UserMessage(err)})
	default:
		logger.Log.Error("internal error", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
