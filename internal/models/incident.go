package models

import "time"

type IncidentStatus string

const (
	IncidentOngoing  IncidentStatus = "ongoing"
	IncidentResolved IncidentStatus = "resolved"
)

type IncidentImpact string

const (
	ImpactCritical    IncidentImpact = "critical"
	ImpactMajor       IncidentImpact = "major"
	ImpactMinor       IncidentImpact = "minor"
	ImpactMaintenance IncidentImpact = "maintenance"
)

func ValidIncidentImpact(i IncidentImpact) bool {
	switch i {
	case ImpactCritical, ImpactMajor, ImpactMinor, ImpactMaintenance:
		return true
	}
	return false
}

// Incident is an immutable audit record once created; resolution is its only
// mutation. There is deliberately no delete.
type Incident struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	MonitorID *uint          `gorm:"index" json:"monitor_id"` // Optional weak reference
	Status    IncidentStatus `gorm:"not null" json:"status"`
	Impact    IncidentImpact `json:"impact"`
	StartTime time.Time      `gorm:"not null" json:"start_time"`
	EndTime   *time.Time     `json:"end_time"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
