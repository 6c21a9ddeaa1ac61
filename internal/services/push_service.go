package services

import (
	"time"

	"github.com/gravitational/trace"
	"go.uber.org/zap"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
	"github.com/upstat-dev/upstat/pkg/logger"
)

// PushService ingests heartbeats from external senders. It is the only write
// path for push-monitor check results; active probing never touches them.
type PushService interface {
	ProcessHeartbeat(token, status, message string, ping int64) error
}

type pushService struct {
	monitorRepo repository.MonitorRepository
	resultRepo  repository.CheckResultRepository
	notifySvc   NotificationService
	onResult    func(monitorID uint)
}

// NewPushService wires heartbeat ingestion. onResult, when non-nil, runs after
// every recorded heartbeat (used to push refresh events to dashboards).
func NewPushService(
	monitorRepo repository.MonitorRepository,
	resultRepo repository.CheckResultRepository,
	notifySvc NotificationService,
	onResult func(monitorID uint),
) PushService {
	return &pushService{
		monitorRepo: monitorRepo,
		resultRepo:  resultRepo,
		notifySvc:   notifySvc,
		onResult:    onResult,
	}
}

func (s *pushService) ProcessHeartbeat(token, status, message string, ping int64) error {
	monitor, err := s.monitorRepo.GetByPushToken(token)
	if err != nil {
		return trace.Wrap(err)
	}
	if monitor == nil {
		return trace.NotFound("no monitor for push token")
	}

	switch status {
	case "":
		status = models.StatusUp
	case models.StatusUp, models.StatusDown:
	default:
		return trace.BadParameter("heartbeat status must be up or down")
	}

	result := &models.CheckResult{
		MonitorID:    monitor.ID,
		Status:       status,
		ResponseTime: ping,
		Message:      message,
		CreatedAt:    time.Now(),
	}
	// The result log is the source of truth for history and uptime; if the
	// append fails, last_status must not advance past it.
	if err := s.resultRepo.Create(result); err != nil {
		return trace.Wrap(err)
	}

	if monitor.LastStatus != status {
		logger.Log.Info("push monitor status changed",
			zap.String("monitor", monitor.Name),
			zap.String("old_status", monitor.LastStatus),
			zap.String("new_status", status))
		s.notifySvc.Notify(*monitor, status, message)
	}

	monitor.LastStatus = status
	now := time.Now()
	monitor.LastCheckedAt = &now

	if err := s.monitorRepo.Update(monitor); err != nil {
		return trace.Wrap(err)
	}

	if s.onResult != nil {
		s.onResult(monitor.ID)
	}
	return nil
}
