package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/services"
)

type PushHandler struct {
	pushService services.PushService
}

func NewPushHandler(pushService services.PushService) *PushHandler {
	return &PushHandler{pushService: pushService}
}

// HandleHeartbeat ingests a heartbeat from a monitored job. It accepts both
// GET and POST so a bare curl in a cron line works.
func (h *PushHandler) HandleHeartbeat(ctx *gin.Context) {
	token := ctx.Param("token")
	status := ctx.Query("status")
	msg := ctx.Query("msg")

	var ping int64
	if raw := ctx.Query("ping"); raw != "" {
		if p, err := strconv.ParseInt(raw, 10, 64); err == nil {
			ping = p
		}
	}

	if err := h.pushService.ProcessHeartbeat(token, status, msg, ping); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
