package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/upstat-dev/upstat/internal/models"
)

type IncidentRepository interface {
	Create(incident *models.Incident) error
	Update(incident *models.Incident) error
	GetByID(id uint) (*models.Incident, error)
	ListOngoing() ([]models.Incident, error)
	ListByMonitor(monitorID uint, limit int) ([]models.Incident, error)
}

type incidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &incidentRepository{db: db}
}

func (r *incidentRepository) Create(incident *models.Incident) error {
	return r.db.Create(incident).Error
}

func (r *incidentRepository) Update(incident *models.Incident) error {
	return r.db.Save(incident).Error
}

func (r *incidentRepository) GetByID(id uint) (*models.Incident, error) {
	var incident models.Incident
	if err := r.db.First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) ListOngoing() ([]models.Incident, error) {
	var incidents []models.Incident
	err := r.db.Where("status = ?", models.IncidentOngoing).
		Order("start_time desc").
		Find(&incidents).Error
	return incidents, err
}

func (r *incidentRepository) ListByMonitor(monitorID uint, limit int) ([]models.Incident, error) {
	var incidents []models.Incident
	err := r.db.Where("monitor_id = ?", monitorID).
		Order("start_time desc").
		Limit(limit).
		Find(&incidents).Error
	return incidents, err
}
