package handlers

import (
	"net/http"
	"text/template"

	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
)

type BadgeHandler struct {
	monitorService services.MonitorService
}

func NewBadgeHandler(monitorService services.MonitorService) *BadgeHandler {
	return &BadgeHandler{monitorService: monitorService}
}

const badgeTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="20">
  <linearGradient id="b" x2="0" y2="100%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <mask id="a">
    <rect width="{{.Width}}" height="20" rx="3" fill="#fff"/>
  </mask>
  <g mask="url(#a)">
    <path fill="#555" d="M0 0h{{.LabelWidth}}v20H0z"/>
    <path fill="{{.Color}}" d="M{{.LabelWidth}} 0h{{.StatusWidth}}v20H{{.LabelWidth}}z"/>
    <path fill="url(#b)" d="M0 0h{{.Width}}v20H0z"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="DejaVu Sans,Verdana,Geneva,sans-serif" font-size="11">
    <text x="{{.LabelX}}" y="15" fill="#010101" fill-opacity=".3">{{.Label}}</text>
    <text x="{{.LabelX}}" y="14">{{.Label}}</text>
    <text x="{{.StatusX}}" y="15" fill="#010101" fill-opacity=".3">{{.Status}}</text>
    <text x="{{.StatusX}}" y="14">{{.Status}}</text>
  </g>
</svg>`

var badgeTmpl = template.Must(template.New("badge").Parse(badgeTemplate))

type badgeData struct {
	Label       string
	Status      string
	Color       string
	Width       int
	LabelWidth  int
	StatusWidth int
	LabelX      float64
	StatusX     float64
}

// GetStatusBadge renders a shields-style SVG for embedding in READMEs.
// Unknown monitors render a grey "unknown" badge rather than a 404 so the
// image never breaks.
func (h *BadgeHandler) GetStatusBadge(ctx *gin.Context) {
	status := models.StatusUnknown
	color := "#9f9f9f"

	if id, err := parseID(ctx, "id"); err == nil {
		if monitor, err := h.monitorService.Get(id); err == nil {
			switch monitor.LastStatus {
			case models.StatusUp:
				status = models.StatusUp
				color = "#4c1"
			case models.StatusDown:
				status = models.StatusDown
				color = "#e05d44"
			}
		}
	}

	label := "status"
	labelWidth := len(label)*7 + 10
	statusWidth := len(status)*7 + 10

	data := badgeData{
		Label:       label,
		Status:      status,
		Color:       color,
		Width:       labelWidth + statusWidth,
		LabelWidth:  labelWidth,
		StatusWidth: statusWidth,
		LabelX:      float64(labelWidth) / 2,
		StatusX:     float64(labelWidth) + float64(statusWidth)/2,
	}

	ctx.Header("Content-Type", "image/svg+xml")
	ctx.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	ctx.Status(http.StatusOK)
	_ = badgeTmpl.Execute(ctx.Writer, data)
}
