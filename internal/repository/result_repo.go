package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/upstat-dev/upstat/internal/models"
)

type CheckResultRepository interface {
	Create(result *models.CheckResult) error
	GetLatest(monitorID uint) (*models.CheckResult, error)
	// GetHistory returns at most limit results, most recent first.
	GetHistory(monitorID uint, limit int) ([]models.CheckResult, error)
	// CountSince returns total and up counts within the window starting at since.
	CountSince(monitorID uint, since time.Time) (total int64, up int64, err error)
	DeleteOlderThan(cutoff time.Time) error
}

type checkResultRepository struct {
	db *gorm.DB
}

func NewCheckResultRepository(db *gorm.DB) CheckResultRepository {
	return &checkResultRepository{db: db}
}

func (r *checkResultRepository) Create(result *models.CheckResult) error {
	return r.db.Create(result).Error
}

func (r *checkResultRepository) GetLatest(monitorID uint) (*models.CheckResult, error) {
	var result models.CheckResult
	err := r.db.Where("monitor_id = ?", monitorID).Order("created_at desc").First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *checkResultRepository) GetHistory(monitorID uint, limit int) ([]models.CheckResult, error) {
	var results []models.CheckResult
	err := r.db.Where("monitor_id = ?", monitorID).
		Order("created_at desc").
		Limit(limit).
		Find(&results).Error
	return results, err
}

func (r *checkResultRepository) CountSince(monitorID uint, since time.Time) (int64, int64, error) {
	var total, up int64
	if err := r.db.Model(&models.CheckResult{}).
		Where("monitor_id = ? AND created_at > ?", monitorID, since).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.CheckResult{}).
		Where("monitor_id = ? AND status = ? AND created_at > ?", monitorID, models.StatusUp, since).
		Count(&up).Error; err != nil {
		return 0, 0, err
	}
	return total, up, nil
}

func (r *checkResultRepository) DeleteOlderThan(cutoff time.Time) error {
	return r.db.Where("created_at < ?", cutoff).Delete(&models.CheckResult{}).Error
}
