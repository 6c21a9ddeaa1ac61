package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
)

type ChannelHandler struct {
	channelService services.ChannelService
}

func NewChannelHandler(channelService services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

type channelRequest struct {
	Name    string             `json:"name" binding:"required"`
	Type    models.ChannelType `json:"type" binding:"required"`
	Config  string             `json:"config" binding:"required"`
	Enabled *bool              `json:"enabled"`
}

// channelResponse exposes the stored config back as a JSON string, the same
// shape clients submit it in.
type channelResponse struct {
	ID      uint               `json:"id"`
	Name    string             `json:"name"`
	Type    models.ChannelType `json:"type"`
	Config  string             `json:"config"`
	Enabled bool               `json:"enabled"`
}

func toChannelResponse(ch *models.NotificationChannel) channelResponse {
	return channelResponse{
		ID:      ch.ID,
		Name:    ch.Name,
		Type:    ch.Type,
		Config:  string(ch.Config),
		Enabled: ch.Enabled,
	}
}

func (h *ChannelHandler) Create(ctx *gin.Context) {
	var req channelRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	channel, err := h.channelService.Create(req.Name, req.Type, req.Config, enabled)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toChannelResponse(channel))
}

func (h *ChannelHandler) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	channel, err := h.channelService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toChannelResponse(channel))
}

func (h *ChannelHandler) List(ctx *gin.Context) {
	channels, err := h.channelService.List()
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

func (h *ChannelHandler) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req channelRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	channel, err := h.channelService.Update(id, req.Name, req.Type, req.Config, enabled)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toChannelResponse(channel))
}

func (h *ChannelHandler) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.channelService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Channel deleted"})
}
