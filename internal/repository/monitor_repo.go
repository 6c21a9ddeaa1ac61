package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/upstat-dev/upstat/internal/models"
)

type MonitorRepository interface {
	Create(monitor *models.Monitor) error
	GetByID(id uint) (*models.Monitor, error)
	GetByPushToken(token string) (*models.Monitor, error)
	GetAll() ([]models.Monitor, error)
	GetByType(t models.MonitorType) ([]models.Monitor, error)
	Update(monitor *models.Monitor) error
	Delete(id uint) error
}

type monitorRepository struct {
	db *gorm.DB
}

func NewMonitorRepository(db *gorm.DB) MonitorRepository {
	return &monitorRepository{db: db}
}

func (r *monitorRepository) Create(monitor *models.Monitor) error {
	return r.db.Create(monitor).Error
}

func (r *monitorRepository) GetByID(id uint) (*models.Monitor, error) {
	var monitor models.Monitor
	if err := r.db.Preload("Group").First(&monitor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &monitor, nil
}

func (r *monitorRepository) GetByPushToken(token string) (*models.Monitor, error) {
	var monitor models.Monitor
	if err := r.db.Where("push_token = ?", token).First(&monitor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &monitor, nil
}

func (r *monitorRepository) GetAll() ([]models.Monitor, error) {
	var monitors []models.Monitor
	if err := r.db.Preload("Group").Find(&monitors).Error; err != nil {
		return nil, err
	}
	return monitors, nil
}

func (r *monitorRepository) GetByType(t models.MonitorType) ([]models.Monitor, error) {
	var monitors []models.Monitor
	if err := r.db.Where("type = ?", t).Find(&monitors).Error; err != nil {
		return nil, err
	}
	return monitors, nil
}

func (r *monitorRepository) Update(monitor *models.Monitor) error {
	return r.db.Save(monitor).Error
}

// Delete removes the monitor along with its status-page selections and
// channel subscriptions. Status pages themselves are never deleted here.
func (r *monitorRepository) Delete(id uint) error {
	if err := r.db.Model(&models.Monitor{ID: id}).Association("StatusPages").Clear(); err != nil {
		return err
	}
	if err := r.db.Where("monitor_id = ?", id).Delete(&models.Subscription{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Monitor{}, id).Error
}
