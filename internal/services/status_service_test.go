package services_test

import (
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
)

func TestOverallStatus(t *testing.T) {
	assert.Equal(t, services.SystemOperational, services.OverallStatus(nil),
		"an empty page must not read as an outage")

	up := []models.Monitor{{LastStatus: models.StatusUp}, {LastStatus: models.StatusUp}}
	assert.Equal(t, services.SystemOperational, services.OverallStatus(up))

	mixed := append(up, models.Monitor{LastStatus: models.StatusDown})
	assert.Equal(t, services.SystemDegraded, services.OverallStatus(mixed))

	unknown := []models.Monitor{{LastStatus: models.StatusUnknown}}
	assert.Equal(t, services.SystemDegraded, services.OverallStatus(unknown),
		"unknown is not up")
}

func TestActiveIncidents(t *testing.T) {
	incidents := []models.Incident{
		{ID: 1, Status: models.IncidentOngoing, StartTime: time.Now().Add(-100 * 24 * time.Hour)},
		{ID: 2, Status: models.IncidentResolved},
		{ID: 3, Status: models.IncidentOngoing},
	}

	active := services.ActiveIncidents(incidents)
	assert.Len(t, active, 2)
	// No implicit age cutoff; an old ongoing incident is still active.
	assert.Equal(t, uint(1), active[0].ID)
	assert.Equal(t, uint(3), active[1].ID)
}

func TestGroupForDisplay(t *testing.T) {
	groups := []models.MonitorGroup{
		{ID: 1, Name: "Databases", Order: 2},
		{ID: 2, Name: "APIs", Order: 1},
	}
	g1, g2, dangling := uint(1), uint(2), uint(99)
	monitors := []models.Monitor{
		{ID: 10, Name: "pg", GroupID: &g1},
		{ID: 11, Name: "rest", GroupID: &g2},
		{ID: 12, Name: "lonely"},
		{ID: 13, Name: "orphan", GroupID: &dangling},
	}

	views := services.GroupForDisplay(monitors, groups)
	assert.Len(t, views, 3)
	assert.Equal(t, "APIs", views[0].Name)
	assert.Equal(t, "Databases", views[1].Name)
	assert.Equal(t, services.UngroupedLabel, views[2].Name)

	assert.Len(t, views[2].Monitors, 2, "ungrouped and dangling land in the same bucket")
}

func TestGroupForDisplay_NoUngroupedBucket(t *testing.T) {
	groups := []models.MonitorGroup{{ID: 1, Name: "APIs", Order: 99}}
	g1 := uint(1)
	monitors := []models.Monitor{{ID: 10, GroupID: &g1}}

	views := services.GroupForDisplay(monitors, groups)
	assert.Len(t, views, 1)
	assert.Equal(t, "APIs", views[0].Name,
		"the ungrouped bucket only appears when it has monitors")
}

func newStatusService() (services.StatusService, *MockMonitorRepo, *MockResultRepo) {
	monitorRepo := new(MockMonitorRepo)
	resultRepo := new(MockResultRepo)
	return services.NewStatusService(monitorRepo, resultRepo), monitorRepo, resultRepo
}

func TestUptimePercentage_NoData(t *testing.T) {
	svc, monitorRepo, resultRepo := newStatusService()
	monitorRepo.On("GetByID", uint(1)).Return(&models.Monitor{ID: 1}, nil)
	resultRepo.On("CountSince", uint(1), mock.Anything).Return(int64(0), int64(0), nil)

	pct, err := svc.UptimePercentage(1, services.UptimeWindow)
	assert.NoError(t, err)
	assert.Nil(t, pct, "no data is nil, never 0% or 100%")
}

func TestUptimePercentage(t *testing.T) {
	svc, monitorRepo, resultRepo := newStatusService()
	monitorRepo.On("GetByID", uint(1)).Return(&models.Monitor{ID: 1}, nil)
	resultRepo.On("CountSince", uint(1), mock.Anything).Return(int64(4), int64(3), nil)

	pct, err := svc.UptimePercentage(1, services.UptimeWindow)
	assert.NoError(t, err)
	assert.NotNil(t, pct)
	assert.InDelta(t, 75.0, *pct, 0.001)
}

func TestUptimePercentage_BadWindow(t *testing.T) {
	svc, _, _ := newStatusService()

	_, err := svc.UptimePercentage(1, 0)
	assert.True(t, trace.IsBadParameter(err))

	_, err = svc.UptimePercentage(1, -time.Hour)
	assert.True(t, trace.IsBadParameter(err))
}

func TestUptimePercentage_UnknownMonitor(t *testing.T) {
	svc, monitorRepo, _ := newStatusService()
	monitorRepo.On("GetByID", uint(404)).Return(nil, nil)

	_, err := svc.UptimePercentage(404, services.UptimeWindow)
	assert.True(t, trace.IsNotFound(err))
}

func TestLatest(t *testing.T) {
	svc, monitorRepo, resultRepo := newStatusService()
	monitorRepo.On("GetByID", uint(1)).Return(&models.Monitor{ID: 1}, nil)
	resultRepo.On("GetLatest", uint(1)).Return(nil, nil)

	result, err := svc.Latest(1)
	assert.NoError(t, err)
	assert.Nil(t, result, "no recorded results is not an error")
}

func TestHistory_LimitHandling(t *testing.T) {
	svc, monitorRepo, resultRepo := newStatusService()
	monitorRepo.On("GetByID", uint(1)).Return(&models.Monitor{ID: 1}, nil)

	_, err := svc.History(1, -1)
	assert.True(t, trace.IsBadParameter(err))

	resultRepo.On("GetHistory", uint(1), services.DefaultHistoryLimit).Return([]models.CheckResult{}, nil).Once()
	_, err = svc.History(1, 0)
	assert.NoError(t, err)

	resultRepo.On("GetHistory", uint(1), services.MaxHistoryLimit).Return([]models.CheckResult{}, nil).Once()
	_, err = svc.History(1, 5000)
	assert.NoError(t, err)

	resultRepo.AssertExpectations(t)
}
