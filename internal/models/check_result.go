package models

import "time"

// CheckResult is one probe or heartbeat outcome. The sequence per monitor is
// append-only and time-ordered; nothing in this system mutates past results.
type CheckResult struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MonitorID    uint      `gorm:"index;not null" json:"monitor_id"`
	Status       string    `gorm:"not null" json:"status"` // up, down
	ResponseTime int64     `json:"response_time"`          // Milliseconds
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
