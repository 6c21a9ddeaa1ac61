package services

import (
	"time"

	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
)

type IncidentService interface {
	Create(title string, impact models.IncidentImpact, monitorID *uint) (*models.Incident, error)
	Resolve(id uint) (*models.Incident, error)
	Get(id uint) (*models.Incident, error)
	ListOngoing() ([]models.Incident, error)
	ListByMonitor(monitorID uint, limit int) ([]models.Incident, error)
}

type incidentService struct {
	incidentRepo repository.IncidentRepository
	monitorRepo  repository.MonitorRepository

	// Per-incident locks serialize resolution: of two concurrent resolves
	// exactly one succeeds, the other observes the resolved state.
	locks entityLocks
}

func NewIncidentService(incidentRepo repository.IncidentRepository, monitorRepo repository.MonitorRepository) IncidentService {
	return &incidentService{incidentRepo: incidentRepo, monitorRepo: monitorRepo}
}

func (s *incidentService) Create(title string, impact models.IncidentImpact, monitorID *uint) (*models.Incident, error) {
	if title == "" {
		return nil, trace.BadParameter("incident title is required")
	}
	if !models.ValidIncidentImpact(impact) {
		return nil, trace.BadParameter("unknown incident impact %q", impact)
	}
	if monitorID != nil {
		monitor, err := s.monitorRepo.GetByID(*monitorID)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if monitor == nil {
			return nil, trace.NotFound("monitor %d not found", *monitorID)
		}
	}

	incident := &models.Incident{
		Title:     title,
		Impact:    impact,
		MonitorID: monitorID,
		Status:    models.IncidentOngoing,
		StartTime: time.Now(),
	}
	if err := s.incidentRepo.Create(incident); err != nil {
		return nil, trace.Wrap(err)
	}
	return incident, nil
}

// Resolve flips an ongoing incident to resolved and stamps end_time exactly
// once. Resolving an already resolved incident is an error, not a no-op, so
// operator mistakes surface.
func (s *incidentService) Resolve(id uint) (*models.Incident, error) {
	defer s.locks.lock(id)()

	incident, err := s.incidentRepo.GetByID(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if incident == nil {
		return nil, trace.NotFound("incident %d not found", id)
	}
	if incident.Status == models.IncidentResolved {
		return nil, trace.CompareFailed("incident %d is already resolved", id)
	}

	now := time.Now()
	incident.Status = models.IncidentResolved
	incident.EndTime = &now

	if err := s.incidentRepo.Update(incident); err != nil {
		return nil, trace.Wrap(err)
	}
	return incident, nil
}

func (s *incidentService) Get(id uint) (*models.Incident, error) {
	incident, err := s.incidentRepo.GetByID(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if incident == nil {
		return nil, trace.NotFound("incident %d not found", id)
	}
	return incident, nil
}

func (s *incidentService) ListOngoing() ([]models.Incident, error) {
	incidents, err := s.incidentRepo.ListOngoing()
	return incidents, trace.Wrap(err)
}

func (s *incidentService) ListByMonitor(monitorID uint, limit int) ([]models.Incident, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	monitor, err := s.monitorRepo.GetByID(monitorID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if monitor == nil {
		return nil, trace.NotFound("monitor %d not found", monitorID)
	}
	incidents, err := s.incidentRepo.ListByMonitor(monitorID, limit)
	return incidents, trace.Wrap(err)
}
