package services_test

import (
	"testing"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/services"
)

func newStatusPageService() (services.StatusPageService, *MockPageRepo, *MockMonitorRepo, *MockStatusSvc) {
	pageRepo := new(MockPageRepo)
	monitorRepo := new(MockMonitorRepo)
	statusSvc := new(MockStatusSvc)
	return services.NewStatusPageService(pageRepo, monitorRepo, statusSvc), pageRepo, monitorRepo, statusSvc
}

func TestCreatePage_SlugValidation(t *testing.T) {
	svc, _, _, _ := newStatusPageService()

	for _, slug := range []string{"", "Bad Slug", "UPPER", "under_score", "na/me"} {
		err := svc.Create(&models.StatusPage{Title: "Status", Slug: slug}, nil)
		assert.True(t, trace.IsBadParameter(err), "slug %q must be rejected", slug)
	}
}

func TestCreatePage_DuplicateSlug(t *testing.T) {
	svc, pageRepo, _, _ := newStatusPageService()
	pageRepo.On("GetBySlug", "main").Return(&models.StatusPage{ID: 1, Slug: "main"}, nil)

	err := svc.Create(&models.StatusPage{Title: "Status", Slug: "main"}, nil)
	assert.True(t, trace.IsAlreadyExists(err))
}

func TestCreatePage_DanglingMonitorsDropped(t *testing.T) {
	svc, pageRepo, monitorRepo, _ := newStatusPageService()
	pageRepo.On("GetBySlug", "main").Return(nil, nil)
	pageRepo.On("Create", mock.AnythingOfType("*models.StatusPage")).Return(nil)
	monitorRepo.On("GetByID", uint(1)).Return(&models.Monitor{ID: 1}, nil)
	monitorRepo.On("GetByID", uint(99)).Return(nil, nil)

	page := &models.StatusPage{Title: "Status", Slug: "main"}
	err := svc.Create(page, []uint{1, 99})
	assert.NoError(t, err, "dangling ids are dropped silently, not an error")
	assert.Len(t, page.Monitors, 1)
	assert.Equal(t, uint(1), page.Monitors[0].ID)
}

func TestUpdatePage_NilSelectionKeepsMonitors(t *testing.T) {
	svc, pageRepo, _, _ := newStatusPageService()
	existing := &models.StatusPage{
		ID: 1, Title: "Status", Slug: "main",
		Monitors: []models.Monitor{{ID: 1}, {ID: 2}},
	}
	pageRepo.On("GetByID", uint(1)).Return(existing, nil)
	pageRepo.On("Update", mock.AnythingOfType("*models.StatusPage")).Return(nil)

	updated, err := svc.Update(1, &models.StatusPage{Title: "New Title", Slug: "main"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Len(t, updated.Monitors, 2)
}

func TestRender_UnknownSlug(t *testing.T) {
	svc, pageRepo, _, _ := newStatusPageService()
	pageRepo.On("GetBySlug", "nope").Return(nil, nil)

	_, err := svc.Render("nope")
	assert.True(t, trace.IsNotFound(err))
}

func TestRender_PrivatePage(t *testing.T) {
	svc, pageRepo, _, _ := newStatusPageService()
	pageRepo.On("GetBySlug", "internal").Return(&models.StatusPage{
		ID: 1, Slug: "internal", Public: false,
	}, nil)

	// Indistinguishable from a missing page; anonymous callers cannot probe.
	_, err := svc.Render("internal")
	assert.True(t, trace.IsNotFound(err))
}

func TestRender_PublicPage(t *testing.T) {
	svc, pageRepo, _, statusSvc := newStatusPageService()

	uptime := 99.5
	pageRepo.On("GetBySlug", "main").Return(&models.StatusPage{
		ID: 1, Title: "Service Status", Slug: "main", Public: true, Theme: "dark",
		Monitors: []models.Monitor{
			{ID: 1, Name: "api", Type: models.TypeHTTP, LastStatus: models.StatusUp, Enabled: true},
			{ID: 2, Name: "hidden", Type: models.TypeHTTP, LastStatus: models.StatusDown, Enabled: false},
		},
	}, nil)
	statusSvc.On("UptimePercentage", uint(1), services.UptimeWindow).Return(&uptime, nil)

	resp, err := svc.Render("main")
	assert.NoError(t, err)
	assert.Len(t, resp.Monitors, 1, "disabled monitors stay off the public page")
	assert.Equal(t, "api", resp.Monitors[0].Name)
	assert.Equal(t, uptime, *resp.Monitors[0].Uptime24h)
	assert.Equal(t, services.SystemOperational, resp.SystemStatus,
		"disabled monitors do not count toward system status")
	assert.Equal(t, "Service Status", resp.Config.Title)
}

func TestRender_DefaultPage(t *testing.T) {
	svc, _, monitorRepo, statusSvc := newStatusPageService()

	monitorRepo.On("GetAll").Return([]models.Monitor{
		{ID: 1, Name: "api", LastStatus: models.StatusUp, Enabled: true},
	}, nil)
	statusSvc.On("UptimePercentage", uint(1), services.UptimeWindow).Return(nil, nil)

	resp, err := svc.Render("")
	assert.NoError(t, err)
	assert.Nil(t, resp.Config, "the implicit default page has no branding")
	assert.Len(t, resp.Monitors, 1)
	assert.Nil(t, resp.Monitors[0].Uptime24h, "no data in window renders as nil")
}

func TestRender_MonitorDeletedMidRender(t *testing.T) {
	svc, pageRepo, _, statusSvc := newStatusPageService()

	pageRepo.On("GetBySlug", "main").Return(&models.StatusPage{
		ID: 1, Slug: "main", Public: true,
		Monitors: []models.Monitor{
			{ID: 1, Name: "gone", LastStatus: models.StatusUp, Enabled: true},
		},
	}, nil)
	statusSvc.On("UptimePercentage", uint(1), services.UptimeWindow).
		Return(nil, trace.NotFound("monitor 1 not found"))

	resp, err := svc.Render("main")
	assert.NoError(t, err)
	assert.Empty(t, resp.Monitors)
}
