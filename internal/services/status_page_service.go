package services

import (
	"regexp"
	"time"

	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type StatusPageService interface {
	Create(page *models.StatusPage, monitorIDs []uint) error
	Get(id uint) (*models.StatusPage, error)
	List() ([]models.StatusPage, error)
	Update(id uint, updates *models.StatusPage, monitorIDs []uint) (*models.StatusPage, error)
	Delete(id uint) error

	// Render produces the public read-model for a page. An empty slug is the
	// implicit default page over all enabled monitors. Unknown and non-public
	// slugs are both NotFound so anonymous callers cannot probe existence.
	Render(slug string) (*PublicStatusResponse, error)
}

// PublicMonitorStatus is the per-monitor slice of the public page.
type PublicMonitorStatus struct {
	ID                uint       `json:"id"`
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	LastStatus        string     `json:"last_status"`
	LastCheckedAt     *time.Time `json:"last_checked_at"`
	Uptime24h         *float64   `json:"uptime_24h"` // nil = no data in window
	CertificateExpiry *time.Time `json:"certificate_expiry,omitempty"`
	GroupName         string     `json:"group_name,omitempty"`
}

type PublicPageConfig struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
	CustomCSS   string `json:"custom_css"`
	Slug        string `json:"slug"`
}

type PublicStatusResponse struct {
	SystemStatus string                `json:"system_status"`
	Monitors     []PublicMonitorStatus `json:"monitors"`
	Config       *PublicPageConfig     `json:"config,omitempty"`
}

type statusPageService struct {
	pageRepo    repository.StatusPageRepository
	monitorRepo repository.MonitorRepository
	statusSvc   StatusService
	locks       entityLocks
}

func NewStatusPageService(pageRepo repository.StatusPageRepository, monitorRepo repository.MonitorRepository, statusSvc StatusService) StatusPageService {
	return &statusPageService{pageRepo: pageRepo, monitorRepo: monitorRepo, statusSvc: statusSvc}
}

func validatePage(page *models.StatusPage) error {
	if page.Title == "" {
		return trace.BadParameter("status page title is required")
	}
	if !slugPattern.MatchString(page.Slug) {
		return trace.BadParameter("slug must be lowercase alphanumeric and dashes")
	}
	if page.Theme == "" {
		page.Theme = "light"
	}
	if page.Theme != "light" && page.Theme != "dark" {
		return trace.BadParameter("theme must be light or dark")
	}
	return nil
}

// resolveMonitors maps a selection to existing monitors; dangling ids are
// silently dropped, never an error.
func (s *statusPageService) resolveMonitors(monitorIDs []uint) ([]models.Monitor, error) {
	monitors := make([]models.Monitor, 0, len(monitorIDs))
	for _, id := range monitorIDs {
		m, err := s.monitorRepo.GetByID(id)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if m != nil {
			monitors = append(monitors, *m)
		}
	}
	return monitors, nil
}

func (s *statusPageService) Create(page *models.StatusPage, monitorIDs []uint) error {
	if err := validatePage(page); err != nil {
		return trace.Wrap(err)
	}
	existing, err := s.pageRepo.GetBySlug(page.Slug)
	if err != nil {
		return trace.Wrap(err)
	}
	if existing != nil {
		return trace.AlreadyExists("slug %q is already in use", page.Slug)
	}

	page.Monitors, err = s.resolveMonitors(monitorIDs)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.pageRepo.Create(page))
}

func (s *statusPageService) Get(id uint) (*models.StatusPage, error) {
	page, err := s.pageRepo.GetByID(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if page == nil {
		return nil, trace.NotFound("status page %d not found", id)
	}
	return page, nil
}

func (s *statusPageService) List() ([]models.StatusPage, error) {
	pages, err := s.pageRepo.GetAll()
	return pages, trace.Wrap(err)
}

// Update replaces the monitor selection wholesale when monitorIDs is non-nil.
// The per-id lock serializes writers, but two editors submitting full
// replacements still overwrite each other; last writer wins.
func (s *statusPageService) Update(id uint, updates *models.StatusPage, monitorIDs []uint) (*models.StatusPage, error) {
	defer s.locks.lock(id)()

	existing, err := s.Get(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if err := validatePage(updates); err != nil {
		return nil, trace.Wrap(err)
	}
	if updates.Slug != existing.Slug {
		other, err := s.pageRepo.GetBySlug(updates.Slug)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if other != nil {
			return nil, trace.AlreadyExists("slug %q is already in use", updates.Slug)
		}
	}

	existing.Title = updates.Title
	existing.Slug = updates.Slug
	existing.Description = updates.Description
	existing.Theme = updates.Theme
	existing.CustomCSS = updates.CustomCSS
	existing.Public = updates.Public

	if monitorIDs != nil {
		existing.Monitors, err = s.resolveMonitors(monitorIDs)
		if err != nil {
			return nil, trace.Wrap(err)
		}
	}

	if err := s.pageRepo.Update(existing); err != nil {
		return nil, trace.Wrap(err)
	}
	return existing, nil
}

func (s *statusPageService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.pageRepo.Delete(id))
}

func (s *statusPageService) Render(slug string) (*PublicStatusResponse, error) {
	var monitors []models.Monitor
	var config *PublicPageConfig

	if slug == "" {
		all, err := s.monitorRepo.GetAll()
		if err != nil {
			return nil, trace.Wrap(err)
		}
		monitors = all
	} else {
		page, err := s.pageRepo.GetBySlug(slug)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if page == nil || !page.Public {
			return nil, trace.NotFound("status page %q not found", slug)
		}
		monitors = page.Monitors
		config = &PublicPageConfig{
			ID:          page.ID,
			Title:       page.Title,
			Description: page.Description,
			Theme:       page.Theme,
			CustomCSS:   page.CustomCSS,
			Slug:        page.Slug,
		}
	}

	visible := make([]models.Monitor, 0, len(monitors))
	for _, m := range monitors {
		if m.Enabled {
			visible = append(visible, m)
		}
	}

	statuses := make([]PublicMonitorStatus, 0, len(visible))
	for _, m := range visible {
		uptime, err := s.statusSvc.UptimePercentage(m.ID, UptimeWindow)
		if err != nil {
			// A monitor deleted after the page was loaded is excluded from
			// the projection, not an error.
			if trace.IsNotFound(err) {
				continue
			}
			return nil, trace.Wrap(err)
		}
		groupName := ""
		if m.Group != nil {
			groupName = m.Group.Name
		}
		statuses = append(statuses, PublicMonitorStatus{
			ID:                m.ID,
			Name:              m.Name,
			Type:              string(m.Type),
			LastStatus:        m.LastStatus,
			LastCheckedAt:     m.LastCheckedAt,
			Uptime24h:         uptime,
			CertificateExpiry: m.CertificateExpiry,
			GroupName:         groupName,
		})
	}

	return &PublicStatusResponse{
		SystemStatus: OverallStatus(visible),
		Monitors:     statuses,
		Config:       config,
	}, nil
}
