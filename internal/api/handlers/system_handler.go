package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/services"
)

type SystemHandler struct {
	authService services.AuthService
}

func NewSystemHandler(authService services.AuthService) *SystemHandler {
	return &SystemHandler{authService: authService}
}

// GetStatus tells the frontend whether the initial admin account still
// needs to be created.
func (h *SystemHandler) GetStatus(ctx *gin.Context) {
	required, err := h.authService.IsSetupRequired()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"setup_required": required})
}
