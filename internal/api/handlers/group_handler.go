package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type groupRequest struct {
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order"`
}

func (h *GroupHandler) Create(ctx *gin.Context) {
	var req groupRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	group := &models.MonitorGroup{Name: req.Name, Order: req.Order}
	if err := h.groupService.Create(group); err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) List(ctx *gin.Context) {
	groups, err := h.groupService.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) Update(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req groupRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	group, err := h.groupService.Update(id, &models.MonitorGroup{Name: req.Name, Order: req.Order})
	if err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusOK, group)
}

// Delete removes the group; its monitors survive and become ungrouped.
func (h *GroupHandler) Delete(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := h.groupService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	invalidateStatusCache(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}
