package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
)

// pushTokenAttempts bounds collision retries on token generation.
const pushTokenAttempts = 3

type MonitorService interface {
	Create(draft *models.Monitor) error
	Get(id uint) (*models.Monitor, error)
	List() ([]models.Monitor, error)
	Update(id uint, req UpdateMonitorRequest) (*models.Monitor, error)
	Delete(id uint) error
}

// UpdateMonitorRequest carries only the fields the caller provided; update is
// a merge, not a replace. Fields belonging to a previous type are retained
// inert rather than erased on type change.
type UpdateMonitorRequest struct {
	Name           *string             `json:"name"`
	Type           *models.MonitorType `json:"type"`
	Target         *string             `json:"target"`
	Interval       *int                `json:"interval"`
	Timeout        *int                `json:"timeout"`
	MaxRetries     *int                `json:"max_retries"`
	ExpectedStatus *string             `json:"expected_status"`
	Method         *string             `json:"method"`
	Headers        *string             `json:"headers"`
	Body           *string             `json:"body"`
	Keyword        *string             `json:"keyword"`
	JSONPath       *string             `json:"json_path"`
	JSONValue      *string             `json:"json_value"`
	Enabled        *bool               `json:"enabled"`
	// A provided group_id of 0 clears the group.
	GroupID *uint `json:"group_id"`
}

type monitorService struct {
	monitorRepo repository.MonitorRepository
	groupRepo   repository.GroupRepository
	locks       entityLocks
}

func NewMonitorService(monitorRepo repository.MonitorRepository, groupRepo repository.GroupRepository) MonitorService {
	return &monitorService{monitorRepo: monitorRepo, groupRepo: groupRepo}
}

// validateMonitor enforces the cross-field invariants of a fully merged
// monitor record. It never rejects inert fields supplied for another type;
// clients may submit stale fields and the prober ignores them.
func validateMonitor(m *models.Monitor) error {
	if m.Name == "" {
		return trace.BadParameter("monitor name is required")
	}
	if !models.ValidMonitorType(m.Type) {
		return trace.BadParameter("unknown monitor type %q", m.Type)
	}
	if m.Type != models.TypePush && m.Target == "" {
		return trace.BadParameter("monitor target is required for type %q", m.Type)
	}
	if m.Interval < 10 {
		return trace.BadParameter("interval must be at least 10 seconds")
	}
	if m.Timeout < 1 {
		return trace.BadParameter("timeout must be at least 1 second")
	}
	if m.MaxRetries < 0 {
		return trace.BadParameter("max_retries must not be negative")
	}
	if m.Type == models.TypeHTTPJSON {
		if (m.JSONPath == "") != (m.JSONValue == "") {
			return trace.BadParameter("json_path and json_value must be provided together")
		}
	}
	if m.Headers != "" && models.FieldRelevant(m.Type, "headers") {
		var obj map[string]string
		if err := json.Unmarshal([]byte(m.Headers), &obj); err != nil {
			return trace.BadParameter("headers must be a JSON object of strings")
		}
	}
	return nil
}

func (s *monitorService) Create(draft *models.Monitor) error {
	if draft.Interval == 0 {
		draft.Interval = 60
	}
	if draft.Timeout == 0 {
		draft.Timeout = 10
	}
	if err := validateMonitor(draft); err != nil {
		return trace.Wrap(err)
	}
	if draft.GroupID != nil {
		group, err := s.groupRepo.GetByID(*draft.GroupID)
		if err != nil {
			return trace.Wrap(err)
		}
		if group == nil {
			return trace.NotFound("monitor group %d not found", *draft.GroupID)
		}
	}
	if draft.LastStatus == "" {
		draft.LastStatus = models.StatusUnknown
	}

	if draft.Type == models.TypePush {
		token, err := s.newPushToken()
		if err != nil {
			return trace.Wrap(err)
		}
		draft.PushToken = token
	} else {
		draft.PushToken = ""
	}

	return trace.Wrap(s.monitorRepo.Create(draft))
}

// newPushToken generates a token unique across all monitors. uuid is backed
// by crypto/rand; collisions indicate something badly wrong.
func (s *monitorService) newPushToken() (string, error) {
	for i := 0; i < pushTokenAttempts; i++ {
		token := uuid.NewString()
		existing, err := s.monitorRepo.GetByPushToken(token)
		if err != nil {
			return "", trace.Wrap(err)
		}
		if existing == nil {
			return token, nil
		}
	}
	return "", trace.AlreadyExists("could not generate a unique push token")
}

func (s *monitorService) Get(id uint) (*models.Monitor, error) {
	monitor, err := s.monitorRepo.GetByID(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if monitor == nil {
		return nil, trace.NotFound("monitor %d not found", id)
	}
	return monitor, nil
}

func (s *monitorService) List() ([]models.Monitor, error) {
	monitors, err := s.monitorRepo.GetAll()
	return monitors, trace.Wrap(err)
}

// Update merges the provided fields into the stored record. The per-id lock
// serializes concurrent editors of the same monitor so neither merge is lost.
func (s *monitorService) Update(id uint, req UpdateMonitorRequest) (*models.Monitor, error) {
	defer s.locks.lock(id)()

	existing, err := s.Get(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.Target != nil {
		existing.Target = *req.Target
	}
	if req.Interval != nil {
		existing.Interval = *req.Interval
	}
	if req.Timeout != nil {
		existing.Timeout = *req.Timeout
	}
	if req.MaxRetries != nil {
		existing.MaxRetries = *req.MaxRetries
	}
	if req.ExpectedStatus != nil {
		existing.ExpectedStatus = *req.ExpectedStatus
	}
	if req.Method != nil {
		existing.Method = *req.Method
	}
	if req.Headers != nil {
		existing.Headers = *req.Headers
	}
	if req.Body != nil {
		existing.Body = *req.Body
	}
	if req.Keyword != nil {
		existing.Keyword = *req.Keyword
	}
	if req.JSONPath != nil {
		existing.JSONPath = *req.JSONPath
	}
	if req.JSONValue != nil {
		existing.JSONValue = *req.JSONValue
	}
	if req.Enabled != nil {
		existing.Enabled = *req.Enabled
	}
	if req.GroupID != nil {
		if *req.GroupID == 0 {
			existing.GroupID = nil
			existing.Group = nil
		} else {
			group, err := s.groupRepo.GetByID(*req.GroupID)
			if err != nil {
				return nil, trace.Wrap(err)
			}
			if group == nil {
				return nil, trace.NotFound("monitor group %d not found", *req.GroupID)
			}
			existing.GroupID = req.GroupID
		}
	}

	// Push tokens are issued once at creation and never regenerated
	// implicitly, including across type changes.
	if existing.Type == models.TypePush && existing.PushToken == "" {
		token, err := s.newPushToken()
		if err != nil {
			return nil, trace.Wrap(err)
		}
		existing.PushToken = token
	}

	if err := validateMonitor(existing); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := s.monitorRepo.Update(existing); err != nil {
		return nil, trace.Wrap(err)
	}
	return existing, nil
}

func (s *monitorService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.monitorRepo.Delete(id))
}
