package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/upstat-dev/upstat/internal/models"
)

type StatusPageRepository interface {
	Create(page *models.StatusPage) error
	GetByID(id uint) (*models.StatusPage, error)
	GetBySlug(slug string) (*models.StatusPage, error)
	GetAll() ([]models.StatusPage, error)
	Update(page *models.StatusPage) error
	Delete(id uint) error
}

type statusPageRepository struct {
	db *gorm.DB
}

func NewStatusPageRepository(db *gorm.DB) StatusPageRepository {
	return &statusPageRepository{db: db}
}

func (r *statusPageRepository) Create(page *models.StatusPage) error {
	return r.db.Create(page).Error
}

func (r *statusPageRepository) GetByID(id uint) (*models.StatusPage, error) {
	var page models.StatusPage
	if err := r.db.Preload("Monitors.Group").Preload("Monitors").First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *statusPageRepository) GetBySlug(slug string) (*models.StatusPage, error) {
	var page models.StatusPage
	if err := r.db.Preload("Monitors.Group").Preload("Monitors").Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *statusPageRepository) GetAll() ([]models.StatusPage, error) {
	var pages []models.StatusPage
	err := r.db.Preload("Monitors.Group").Preload("Monitors").Find(&pages).Error
	return pages, err
}

// Update replaces the monitor selection wholesale; concurrent editors
// overwrite each other, last writer wins.
func (r *statusPageRepository) Update(page *models.StatusPage) error {
	if err := r.db.Model(page).Association("Monitors").Replace(page.Monitors); err != nil {
		return err
	}
	return r.db.Save(page).Error
}

func (r *statusPageRepository) Delete(id uint) error {
	if err := r.db.Model(&models.StatusPage{ID: id}).Association("Monitors").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&models.StatusPage{}, id).Error
}
