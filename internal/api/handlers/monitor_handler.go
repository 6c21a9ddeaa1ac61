package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
	"github.com/upstat-dev/upstat/pkg/cache"
)

type MonitorHandler struct {
	monitorService services.MonitorService
}

func NewMonitorHandler(monitorService services.MonitorService) *MonitorHandler {
	return &MonitorHandler{monitorService: monitorService}
}

type createMonitorRequest struct {
	Name           string             `json:"name" binding:"required"`
	Type           models.MonitorType `json:"type" binding:"required"`
	Target         string             `json:"target"`
	Interval       int                `json:"interval"`
	Timeout        int                `json:"timeout"`
	MaxRetries     int                `json:"max_retries"`
	ExpectedStatus string             `json:"expected_status"`
	Method         string             `json:"method"`
	Headers        string             `json:"headers"`
	Body           string             `json:"body"`
	Keyword        string             `json:"keyword"`
	JSONPath       string             `json:"json_path"`
	JSONValue      string             `json:"json_value"`
	Enabled        *bool              `json:"enabled"`
	GroupID        *uint              `json:"group_id"`
}

func (h *MonitorHandler) Create(ctx *gin.Context) {
	var req createMonitorRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	monitor := &models.Monitor{
		Name:           req.Name,
		Type:           req.Type,
		Target:         req.Target,
		Interval:       req.Interval,
		Timeout:        req.Timeout,
		MaxRetries:     req.MaxRetries,
		ExpectedStatus: req.ExpectedStatus,
		Method:         req.Method,
		Headers:        req.Headers,
		Body:           req.Body,
		Keyword:        req.Keyword,
		JSONPath:       req.JSONPath,
		JSONValue:      req.JSONValue,
		Enabled:        enabled,
		GroupID:        req.GroupID,
	}

	if err := h.monitorService.Create(monitor); err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusCreated, monitor)
}

func (h *MonitorHandler) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	monitor, err := h.monitorService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, monitor)
}

func (h *MonitorHandler) List(ctx *gin.Context) {
	monitors, err := h.monitorService.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, monitors)
}

func (h *MonitorHandler) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req services.UpdateMonitorRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	monitor, err := h.monitorService.Update(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusOK, monitor)
}

func (h *MonitorHandler) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.monitorService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Monitor deleted"})
}

func parseID(ctx *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil {
		return 0, trace.BadParameter("invalid %s", param)
	}
	return uint(id), nil
}

// invalidateStatusCache drops cached public status payloads after any
// mutation that can change them.
func invalidateStatusCache(ctx *gin.Context) {
	_ = cache.DeletePrefix(ctx.Request.Context(), "public_status:")
}
