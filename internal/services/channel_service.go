package services

import (
	"encoding/json"

	"github.com/gravitational/trace"
	"gorm.io/datatypes"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/notification"
	"github.com/upstat-dev/upstat/internal/repository"
)

type ChannelService interface {
	Create(name string, channelType models.ChannelType, configJSON string, enabled bool) (*models.NotificationChannel, error)
	Get(id uint) (*models.NotificationChannel, error)
	List() ([]models.NotificationChannel, error)
	Update(id uint, name string, channelType models.ChannelType, configJSON string, enabled bool) (*models.NotificationChannel, error)
	Delete(id uint) error
}

type channelService struct {
	channelRepo repository.ChannelRepository
	notifiers   map[string]notification.Notifier
	locks       entityLocks
}

func NewChannelService(channelRepo repository.ChannelRepository, notifiers []notification.Notifier) ChannelService {
	byType := make(map[string]notification.Notifier, len(notifiers))
	for _, n := range notifiers {
		byType[n.Type()] = n
	}
	return &channelService{channelRepo: channelRepo, notifiers: byType}
}

// validateChannel rejects unparsable config before anything is persisted;
// per-type required keys are checked by the matching notifier.
func (s *channelService) validateChannel(name string, channelType models.ChannelType, configJSON string) error {
	if name == "" {
		return trace.BadParameter("channel name is required")
	}
	if !models.ValidChannelType(channelType) {
		return trace.BadParameter("unknown channel type %q", channelType)
	}
	if !json.Valid([]byte(configJSON)) {
		return trace.BadParameter("channel config must be valid JSON")
	}
	if notifier, ok := s.notifiers[string(channelType)]; ok {
		if err := notifier.ValidateConfig(configJSON); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

func (s *channelService) Create(name string, channelType models.ChannelType, configJSON string, enabled bool) (*models.NotificationChannel, error) {
	if err := s.validateChannel(name, channelType, configJSON); err != nil {
		return nil, trace.Wrap(err)
	}
	channel := &models.NotificationChannel{
		Name:    name,
		Type:    channelType,
		Config:  datatypes.JSON([]byte(configJSON)),
		Enabled: enabled,
	}
	if err := s.channelRepo.Create(channel); err != nil {
		return nil, trace.Wrap(err)
	}
	return channel, nil
}

func (s *channelService) Get(id uint) (*models.NotificationChannel, error) {
	channel, err := s.channelRepo.GetByID(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if channel == nil {
		return nil, trace.NotFound("channel %d not found", id)
	}
	return channel, nil
}

func (s *channelService) List() ([]models.NotificationChannel, error) {
	channels, err := s.channelRepo.GetAll()
	return channels, trace.Wrap(err)
}

func (s *channelService) Update(id uint, name string, channelType models.ChannelType, configJSON string, enabled bool) (*models.NotificationChannel, error) {
	defer s.locks.lock(id)()

	existing, err := s.Get(id)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if err := s.validateChannel(name, channelType, configJSON); err != nil {
		return nil, trace.Wrap(err)
	}

	existing.Name = name
	existing.Type = channelType
	existing.Config = datatypes.JSON([]byte(configJSON))
	existing.Enabled = enabled

	if err := s.channelRepo.Update(existing); err != nil {
		return nil, trace.Wrap(err)
	}
	return existing, nil
}

func (s *channelService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.channelRepo.Delete(id))
}
