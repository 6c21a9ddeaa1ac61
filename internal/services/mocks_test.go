package services_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/upstat-dev/upstat/internal/models"
)

type MockMonitorRepo struct {
	mock.Mock
}

func (m *MockMonitorRepo) Create(monitor *models.Monitor) error {
	return m.Called(monitor).Error(0)
}

func (m *MockMonitorRepo) GetByID(id uint) (*models.Monitor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Monitor), args.Error(1)
}

func (m *MockMonitorRepo) GetByPushToken(token string) (*models.Monitor, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Monitor), args.Error(1)
}

func (m *MockMonitorRepo) GetAll() ([]models.Monitor, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Monitor), args.Error(1)
}

func (m *MockMonitorRepo) GetByType(t models.MonitorType) ([]models.Monitor, error) {
	args := m.Called(t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Monitor), args.Error(1)
}

func (m *MockMonitorRepo) Update(monitor *models.Monitor) error {
	return m.Called(monitor).Error(0)
}

func (m *MockMonitorRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(group *models.MonitorGroup) error {
	return m.Called(group).Error(0)
}

func (m *MockGroupRepo) GetByID(id uint) (*models.MonitorGroup, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonitorGroup), args.Error(1)
}

func (m *MockGroupRepo) GetAll() ([]models.MonitorGroup, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MonitorGroup), args.Error(1)
}

func (m *MockGroupRepo) Update(group *models.MonitorGroup) error {
	return m.Called(group).Error(0)
}

func (m *MockGroupRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) Create(result *models.CheckResult) error {
	return m.Called(result).Error(0)
}

func (m *MockResultRepo) GetLatest(monitorID uint) (*models.CheckResult, error) {
	args := m.Called(monitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckResult), args.Error(1)
}

func (m *MockResultRepo) GetHistory(monitorID uint, limit int) ([]models.CheckResult, error) {
	args := m.Called(monitorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CheckResult), args.Error(1)
}

func (m *MockResultRepo) CountSince(monitorID uint, since time.Time) (int64, int64, error) {
	args := m.Called(monitorID, since)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockResultRepo) DeleteOlderThan(cutoff time.Time) error {
	return m.Called(cutoff).Error(0)
}

type MockIncidentRepo struct {
	mock.Mock
}

func (m *MockIncidentRepo) Create(incident *models.Incident) error {
	return m.Called(incident).Error(0)
}

func (m *MockIncidentRepo) Update(incident *models.Incident) error {
	return m.Called(incident).Error(0)
}

func (m *MockIncidentRepo) GetByID(id uint) (*models.Incident, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Incident), args.Error(1)
}

func (m *MockIncidentRepo) ListOngoing() ([]models.Incident, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Incident), args.Error(1)
}

func (m *MockIncidentRepo) ListByMonitor(monitorID uint, limit int) ([]models.Incident, error) {
	args := m.Called(monitorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Incident), args.Error(1)
}

type MockChannelRepo struct {
	mock.Mock
}

func (m *MockChannelRepo) Create(channel *models.NotificationChannel) error {
	return m.Called(channel).Error(0)
}

func (m *MockChannelRepo) GetByID(id uint) (*models.NotificationChannel, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationChannel), args.Error(1)
}

func (m *MockChannelRepo) GetAll() ([]models.NotificationChannel, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotificationChannel), args.Error(1)
}

func (m *MockChannelRepo) Update(channel *models.NotificationChannel) error {
	return m.Called(channel).Error(0)
}

func (m *MockChannelRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type MockPageRepo struct {
	mock.Mock
}

func (m *MockPageRepo) Create(page *models.StatusPage) error {
	return m.Called(page).Error(0)
}

func (m *MockPageRepo) GetByID(id uint) (*models.StatusPage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusPage), args.Error(1)
}

func (m *MockPageRepo) GetBySlug(slug string) (*models.StatusPage, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusPage), args.Error(1)
}

func (m *MockPageRepo) GetAll() ([]models.StatusPage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatusPage), args.Error(1)
}

func (m *MockPageRepo) Update(page *models.StatusPage) error {
	return m.Called(page).Error(0)
}

func (m *MockPageRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type MockSubRepo struct {
	mock.Mock
}

func (m *MockSubRepo) Subscribe(monitorID, channelID uint) error {
	return m.Called(monitorID, channelID).Error(0)
}

func (m *MockSubRepo) Unsubscribe(monitorID, channelID uint) error {
	return m.Called(monitorID, channelID).Error(0)
}

func (m *MockSubRepo) GetChannelsByMonitorID(monitorID uint) ([]models.NotificationChannel, error) {
	args := m.Called(monitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotificationChannel), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifySvc struct {
	mock.Mock
}

func (m *MockNotifySvc) Notify(monitor models.Monitor, newStatus string, message string) {
	m.Called(monitor, newStatus, message)
}

type MockStatusSvc struct {
	mock.Mock
}

func (m *MockStatusSvc) UptimePercentage(monitorID uint, window time.Duration) (*float64, error) {
	args := m.Called(monitorID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockStatusSvc) History(monitorID uint, limit int) ([]models.CheckResult, error) {
	args := m.Called(monitorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CheckResult), args.Error(1)
}

func (m *MockStatusSvc) Latest(monitorID uint) (*models.CheckResult, error) {
	args := m.Called(monitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckResult), args.Error(1)
}
