package heartbeat

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
	"github.com/upstat-dev/upstat/internal/services"
	"github.com/upstat-dev/upstat/pkg/logger"
)

const (
	defaultSweepInterval = 30 * time.Second

	pruneInterval   = 12 * time.Hour
	resultRetention = 90 * 24 * time.Hour
)

// Sweeper marks push monitors down when no heartbeat arrived within the
// interval + timeout grace period. It is the only scheduled job in this core;
// active probing belongs to the external probing engine.
type Sweeper struct {
	monitorRepo repository.MonitorRepository
	resultRepo  repository.CheckResultRepository
	notifySvc   services.NotificationService
	onResult    func(monitorID uint)

	sweepEvery time.Duration
	stopChan   chan struct{}
	wg         sync.WaitGroup
}

func NewSweeper(
	monitorRepo repository.MonitorRepository,
	resultRepo repository.CheckResultRepository,
	notifySvc services.NotificationService,
	onResult func(monitorID uint),
) *Sweeper {
	return &Sweeper{
		monitorRepo: monitorRepo,
		resultRepo:  resultRepo,
		notifySvc:   notifySvc,
		onResult:    onResult,
		sweepEvery:  defaultSweepInterval,
		stopChan:    make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	logger.Log.Info("starting heartbeat sweeper", zap.Duration("interval", s.sweepEvery))
	s.wg.Add(1)
	go s.run()
}

func (s *Sweeper) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	logger.Log.Info("heartbeat sweeper stopped")
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	pruner := time.NewTicker(pruneInterval)
	defer pruner.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Sweep()
		case <-pruner.C:
			s.Prune()
		}
	}
}

// Prune trims the append-only result log; the uptime window never looks
// back further than this.
func (s *Sweeper) Prune() {
	cutoff := time.Now().Add(-resultRetention)
	if err := s.resultRepo.DeleteOlderThan(cutoff); err != nil {
		logger.Log.Error("failed to prune old check results", zap.Error(err))
		return
	}
	logger.Log.Info("pruned check results", zap.Time("cutoff", cutoff))
}

// Sweep scans all push monitors once.
func (s *Sweeper) Sweep() {
	monitors, err := s.monitorRepo.GetByType(models.TypePush)
	if err != nil {
		logger.Log.Error("failed to fetch push monitors", zap.Error(err))
		return
	}

	for _, m := range monitors {
		if !m.Enabled {
			continue
		}
		s.check(m)
	}
}

func (s *Sweeper) check(m models.Monitor) {
	// A monitor that never checked in has no baseline; stay unknown until
	// the first heartbeat.
	if m.LastCheckedAt == nil {
		return
	}

	grace := time.Duration(m.Interval+m.Timeout) * time.Second
	if time.Since(*m.LastCheckedAt) <= grace {
		return
	}
	if m.LastStatus == models.StatusDown {
		return
	}

	logger.Log.Warn("push monitor heartbeat overdue",
		zap.String("monitor", m.Name),
		zap.Duration("grace", grace))

	m.LastStatus = models.StatusDown
	// LastCheckedAt is left alone so operators can see when it last
	// actually checked in.
	if err := s.monitorRepo.Update(&m); err != nil {
		logger.Log.Error("failed to update push monitor", zap.Error(err))
		return
	}

	if err := s.resultRepo.Create(&models.CheckResult{
		MonitorID: m.ID,
		Status:    models.StatusDown,
		Message:   "heartbeat overdue",
		CreatedAt: time.Now(),
	}); err != nil {
		logger.Log.Error("failed to record overdue result", zap.Error(err))
	}

	s.notifySvc.Notify(m, models.StatusDown, "heartbeat overdue")

	if s.onResult != nil {
		s.onResult(m.ID)
	}
}
