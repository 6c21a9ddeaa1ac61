package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/notification"
	"github.com/upstat-dev/upstat/internal/repository"
	"github.com/upstat-dev/upstat/pkg/logger"
)

// NotificationService fans a status change out to the channels subscribed to
// the monitor. Delivery runs async and never blocks the caller.
type NotificationService interface {
	Notify(monitor models.Monitor, newStatus string, message string)
}

type notificationService struct {
	subRepo   repository.SubscriptionRepository
	notifiers map[string]notification.Notifier
}

func NewNotificationService(subRepo repository.SubscriptionRepository, notifiers []notification.Notifier) NotificationService {
	byType := make(map[string]notification.Notifier, len(notifiers))
	for _, n := range notifiers {
		byType[n.Type()] = n
	}
	return &notificationService{subRepo: subRepo, notifiers: byType}
}

func (s *notificationService) Notify(monitor models.Monitor, newStatus string, message string) {
	channels, err := s.subRepo.GetChannelsByMonitorID(monitor.ID)
	if err != nil {
		logger.Log.Error("failed to fetch subscriptions", zap.Uint("monitor_id", monitor.ID), zap.Error(err))
		return
	}
	if len(channels) == 0 {
		return
	}

	msg := notification.Message{
		MonitorName: monitor.Name,
		Target:      monitor.Target,
		Status:      newStatus,
		Message:     message,
		Time:        time.Now().Format(time.RFC3339),
	}

	for _, ch := range channels {
		if !ch.Enabled {
			continue
		}
		notifier, ok := s.notifiers[string(ch.Type)]
		if !ok {
			logger.Log.Warn("no notifier registered for channel type", zap.String("type", string(ch.Type)))
			continue
		}

		go func(n notification.Notifier, configJSON, name string) {
			if err := n.Send(configJSON, msg); err != nil {
				logger.Log.Error("failed to send notification",
					zap.String("channel", name),
					zap.Error(err))
				return
			}
			logger.Log.Info("notification sent", zap.String("channel", name))
		}(notifier, string(ch.Config), ch.Name)
	}
}
