package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
	"github.com/upstat-dev/upstat/pkg/cache"
)

const statusCacheTTL = 30 * time.Second

type StatusPageHandler struct {
	pageService   services.StatusPageService
	statusService services.StatusService
}

func NewStatusPageHandler(pageService services.StatusPageService, statusService services.StatusService) *StatusPageHandler {
	return &StatusPageHandler{pageService: pageService, statusService: statusService}
}

type statusPageRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
	CustomCSS   string `json:"custom_css"`
	Public      bool   `json:"public"`
	// MonitorIDs replaces the page's selection wholesale when present.
	MonitorIDs []uint `json:"monitor_ids"`
}

func (h *StatusPageHandler) Create(ctx *gin.Context) {
	var req statusPageRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	page := &models.StatusPage{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Theme:       req.Theme,
		CustomCSS:   req.CustomCSS,
		Public:      req.Public,
	}

	if err := h.pageService.Create(page, req.MonitorIDs); err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusCreated, page)
}

func (h *StatusPageHandler) Get(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	page, err := h.pageService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, page)
}

func (h *StatusPageHandler) List(ctx *gin.Context) {
	pages, err := h.pageService.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pages)
}

func (h *StatusPageHandler) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req statusPageRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	page, err := h.pageService.Update(id, &models.StatusPage{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Theme:       req.Theme,
		CustomCSS:   req.CustomCSS,
		Public:      req.Public,
	}, req.MonitorIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusOK, page)
}

func (h *StatusPageHandler) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.pageService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Status page deleted"})
}

// GetPublicStatus serves the anonymous read-model. Responses are cached
// briefly so a popular page does not hammer the database.
func (h *StatusPageHandler) GetPublicStatus(ctx *gin.Context) {
	slug := ctx.Param("slug")

	cacheKey := "public_status:" + slug
	if cached, err := cache.Get(ctx.Request.Context(), cacheKey); err == nil {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	resp, err := h.pageService.Render(slug)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if payload, err := json.Marshal(resp); err == nil {
		_ = cache.Set(ctx.Request.Context(), cacheKey, string(payload), statusCacheTTL)
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetMonitorLatest serves the newest check result for a monitor; 204 when
// nothing was ever recorded.
func (h *StatusPageHandler) GetMonitorLatest(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	result, err := h.statusService.Latest(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if result == nil {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetMonitorHistory serves recent check results for public status pages,
// newest first.
func (h *StatusPageHandler) GetMonitorHistory(ctx *gin.Context) {
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

	history, err := h.statusService.History(id, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, history)
}
