package models

import (
	"time"

	"gorm.io/gorm"
)

type StatusPage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"` // lowercase alphanumeric and dashes
	Description string `json:"description"`
	Theme       string `gorm:"default:'light'" json:"theme"` // light, dark
	CustomCSS   string `json:"custom_css"`                   // Injected verbatim, trusted-operator content
	Public      bool   `gorm:"default:false" json:"public"`

	// Non-owning selection of monitors this page exposes.
	Monitors []Monitor `gorm:"many2many:status_page_monitors" json:"monitors,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
