package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
)

type IncidentHandler struct {
	incidentService services.IncidentService
}

func NewIncidentHandler(incidentService services.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

type createIncidentRequest struct {
	Title     string                `json:"title" binding:"required"`
	Impact    models.IncidentImpact `json:"impact" binding:"required"`
	MonitorID *uint                 `json:"monitor_id"`
}

func (h *IncidentHandler) Create(ctx *gin.Context) {
	var req createIncidentRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	incident, err := h.incidentService.Create(req.Title, req.Impact, req.MonitorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusCreated, incident)
}

func (h *IncidentHandler) Resolve(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	incident, err := h.incidentService.Resolve(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) ListByMonitor(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
	}

	incidents, err := h.incidentService.ListByMonitor(id, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) ListOngoing(ctx *gin.Context) {
	incidents, err := h.incidentService.ListOngoing()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}
