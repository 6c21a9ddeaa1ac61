package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/services"
)

type DashboardHandler struct {
	monitorService  services.MonitorService
	groupService    services.GroupService
	incidentService services.IncidentService
}

func NewDashboardHandler(
	monitorService services.MonitorService,
	groupService services.GroupService,
	incidentService services.IncidentService,
) *DashboardHandler {
	return &DashboardHandler{
		monitorService:  monitorService,
		groupService:    groupService,
		incidentService: incidentService,
	}
}

// GetDashboard returns the grouped monitor view the admin UI renders:
// monitors partitioned by group with the catch-all bucket last, the overall
// system status, and ongoing incidents.
func (h *DashboardHandler) GetDashboard(ctx *gin.Context) {
	monitors, err := h.monitorService.List()
	if err != nil {
		respondError(ctx, err)
		return
	}
	groups, err := h.groupService.List()
	if err != nil {
		respondError(ctx, err)
		return
	}
	incidents, err := h.incidentService.ListOngoing()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"system_status":    services.OverallStatus(monitors),
		"groups":           services.GroupForDisplay(monitors, groups),
		"active_incidents": services.ActiveIncidents(incidents),
	})
}
