package services

import (
	"sort"
	"time"

	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
)

const (
	// DefaultHistoryLimit matches the dashboard's "last 50 checks" chart.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit bounds history scans; unbounded reads over the
	// append-only result log are not viable at scale.
	MaxHistoryLimit = 1000
	// UptimeWindow is the trailing window behind the dashboard uptime figure.
	UptimeWindow = 24 * time.Hour
	// UngroupedLabel names the pseudo-group for monitors without a group.
	UngroupedLabel = "Other Services"
)

const (
	SystemOperational = "operational"
	SystemDegraded    = "degraded"
)

// OverallStatus reduces a monitor set to one system status. An empty set is
// operational: an empty status page must not read as an outage.
func OverallStatus(monitors []models.Monitor) string {
	for _, m := range monitors {
		if m.LastStatus != models.StatusUp {
			return SystemDegraded
		}
	}
	return SystemOperational
}

// ActiveIncidents filters to ongoing incidents. There is no implicit age
// cutoff; an ongoing incident stays active until resolved.
func ActiveIncidents(incidents []models.Incident) []models.Incident {
	active := make([]models.Incident, 0, len(incidents))
	for _, in := range incidents {
		if in.Status == models.IncidentOngoing {
			active = append(active, in)
		}
	}
	return active
}

// GroupView is one display partition of the monitor list.
type GroupView struct {
	ID       *uint            `json:"id,omitempty"`
	Name     string           `json:"name"`
	Order    int              `json:"order"`
	Monitors []models.Monitor `json:"monitors"`
}

// GroupForDisplay partitions monitors by group. Named groups sort by their
// order field; the ungrouped bucket is always last regardless of any numeric
// order. A dangling group_id falls back to the ungrouped bucket.
func GroupForDisplay(monitors []models.Monitor, groups []models.MonitorGroup) []GroupView {
	byGroup := make(map[uint][]models.Monitor)
	var ungrouped []models.Monitor

	known := make(map[uint]models.MonitorGroup, len(groups))
	for _, g := range groups {
		known[g.ID] = g
	}

	for _, m := range monitors {
		if m.GroupID == nil {
			ungrouped = append(ungrouped, m)
			continue
		}
		if _, ok := known[*m.GroupID]; !ok {
			ungrouped = append(ungrouped, m)
			continue
		}
		byGroup[*m.GroupID] = append(byGroup[*m.GroupID], m)
	}

	views := make([]GroupView, 0, len(groups)+1)
	for _, g := range groups {
		id := g.ID
		views = append(views, GroupView{
			ID:       &id,
			Name:     g.Name,
			Order:    g.Order,
			Monitors: byGroup[g.ID],
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Order < views[j].Order
	})

	if len(ungrouped) > 0 {
		views = append(views, GroupView{Name: UngroupedLabel, Monitors: ungrouped})
	}
	return views
}

// StatusService is the read path over recorded check results. It holds no
// state of its own; any number of concurrent readers may proceed.
type StatusService interface {
	// UptimePercentage returns nil when no results fall inside the window;
	// callers must render that as "no data", never as 0% or 100%.
	UptimePercentage(monitorID uint, window time.Duration) (*float64, error)
	// History returns the most recent limit results, newest first.
	History(monitorID uint, limit int) ([]models.CheckResult, error)
	// Latest returns the newest result, or nil when none was ever recorded.
	Latest(monitorID uint) (*models.CheckResult, error)
}

type statusService struct {
	monitorRepo repository.MonitorRepository
	resultRepo  repository.CheckResultRepository
}

func NewStatusService(monitorRepo repository.MonitorRepository, resultRepo repository.CheckResultRepository) StatusService {
	return &statusService{monitorRepo: monitorRepo, resultRepo: resultRepo}
}

func (s *statusService) UptimePercentage(monitorID uint, window time.Duration) (*float64, error) {
	if window <= 0 {
		return nil, trace.BadParameter("uptime window must be positive")
	}
	monitor, err := s.monitorRepo.GetByID(monitorID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if monitor == nil {
		return nil, trace.NotFound("monitor %d not found", monitorID)
	}

	total, up, err := s.resultRepo.CountSince(monitorID, time.Now().Add(-window))
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if total == 0 {
		return nil, nil
	}
	pct := 100 * float64(up) / float64(total)
	return &pct, nil
}

func (s *statusService) History(monitorID uint, limit int) ([]models.CheckResult, error) {
	if limit < 0 {
		return nil, trace.BadParameter("history limit must not be negative")
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	monitor, err := s.monitorRepo.GetByID(monitorID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if monitor == nil {
		return nil, trace.NotFound("monitor %d not found", monitorID)
	}

	results, err := s.resultRepo.GetHistory(monitorID, limit)
	return results, trace.Wrap(err)
}

func (s *statusService) Latest(monitorID uint) (*models.CheckResult, error) {
	monitor, err := s.monitorRepo.GetByID(monitorID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if monitor == nil {
		return nil, trace.NotFound("monitor %d not found", monitorID)
	}

	result, err := s.resultRepo.GetLatest(monitorID)
	return result, trace.Wrap(err)
}
