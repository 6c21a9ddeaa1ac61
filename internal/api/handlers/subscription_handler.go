package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/repository"
)

type SubscriptionHandler struct {
	subRepo repository.SubscriptionRepository
}

func NewSubscriptionHandler(subRepo repository.SubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{subRepo: subRepo}
}

func parseQueryID(ctx *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Query(param), 10, 32)
	if err != nil || id == 0 {
		return 0, trace.BadParameter("invalid %s", param)
	}
	return uint(id), nil
}

type subscriptionRequest struct {
	MonitorID uint `json:"monitor_id" binding:"required"`
	ChannelID uint `json:"channel_id" binding:"required"`
}

func (h *SubscriptionHandler) Subscribe(ctx *gin.Context) {
	var req subscriptionRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.subRepo.Subscribe(req.MonitorID, req.ChannelID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
}

func (h *SubscriptionHandler) Unsubscribe(ctx *gin.Context) {
	monitorID, err := parseQueryID(ctx, "monitor_id")
	if err != nil {
		respondError(ctx, err)
		return
	}
	channelID, err := parseQueryID(ctx, "channel_id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.subRepo.Unsubscribe(monitorID, channelID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

func (h *SubscriptionHandler) ListByMonitor(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	channels, err := h.subRepo.GetChannelsByMonitorID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]channelResponse, 0, len(channels))
	for i := range channels {
		out = append(out, toChannelResponse(&channels[i]))
	}
	ctx.JSON(http.StatusOK, out)
}
