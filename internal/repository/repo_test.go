package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/upstat-dev/upstat/internal/config"
	"github.com/upstat-dev/upstat/internal/models"
	"github.com/upstat-dev/upstat/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "upstat.db"),
	})
	if err != nil {
		t.Fatalf("opening sqlite database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return db
}

func TestDeleteGroup_UngroupsMonitors(t *testing.T) {
	db := openTestDB(t)
	groupRepo := repository.NewGroupRepository(db)
	monitorRepo := repository.NewMonitorRepository(db)

	group := &models.MonitorGroup{Name: "APIs"}
	assert.NoError(t, groupRepo.Create(group))

	member := &models.Monitor{Name: "api", Type: models.TypeHTTP, Target: "https://example.com", GroupID: &group.ID}
	other := &models.Monitor{Name: "db", Type: models.TypeTCP, Target: "db.internal:5432"}
	assert.NoError(t, monitorRepo.Create(member))
	assert.NoError(t, monitorRepo.Create(other))

	assert.NoError(t, groupRepo.Delete(group.ID))

	gone, err := groupRepo.GetByID(group.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	orphaned, err := monitorRepo.GetByID(member.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, orphaned, "member monitor survives group deletion") {
		assert.Nil(t, orphaned.GroupID, "group_id is cleared, not cascaded")
	}

	untouched, err := monitorRepo.GetByID(other.ID)
	assert.NoError(t, err)
	assert.NotNil(t, untouched)
}

func TestDeleteMonitor_ClearsSelectionsAndSubscriptions(t *testing.T) {
	db := openTestDB(t)
	monitorRepo := repository.NewMonitorRepository(db)
	pageRepo := repository.NewStatusPageRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	doomed := &models.Monitor{Name: "api", Type: models.TypeHTTP, Target: "https://example.com"}
	kept := &models.Monitor{Name: "web", Type: models.TypeHTTP, Target: "https://example.org"}
	assert.NoError(t, monitorRepo.Create(doomed))
	assert.NoError(t, monitorRepo.Create(kept))

	page := &models.StatusPage{
		Title:    "Public Status",
		Slug:     "public",
		Public:   true,
		Monitors: []models.Monitor{*doomed, *kept},
	}
	assert.NoError(t, pageRepo.Create(page))

	channel := &models.NotificationChannel{
		Name:    "ops",
		Type:    models.ChannelWebhook,
		Config:  datatypes.JSON([]byte(`{"url":"https://hooks.example.com/ops"}`)),
		Enabled: true,
	}
	assert.NoError(t, channelRepo.Create(channel))
	assert.NoError(t, subRepo.Subscribe(doomed.ID, channel.ID))

	assert.NoError(t, monitorRepo.Delete(doomed.ID))

	reloaded, err := pageRepo.GetByID(page.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, reloaded, "the page itself is never deleted") {
		if assert.Len(t, reloaded.Monitors, 1, "deleted monitor leaves the selection") {
			assert.Equal(t, kept.ID, reloaded.Monitors[0].ID)
		}
	}

	channels, err := subRepo.GetChannelsByMonitorID(doomed.ID)
	assert.NoError(t, err)
	assert.Empty(t, channels, "subscriptions die with the monitor")

	survivor, err := channelRepo.GetByID(channel.ID)
	assert.NoError(t, err)
	assert.NotNil(t, survivor, "the channel itself is never deleted")
}
