package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChannelType string

const (
	ChannelWebhook  ChannelType = "webhook"
	ChannelEmail    ChannelType = "email"
	ChannelDiscord  ChannelType = "discord"
	ChannelTelegram ChannelType = "telegram"
)

func ValidChannelType(t ChannelType) bool {
	switch t {
	case ChannelWebhook, ChannelEmail, ChannelDiscord, ChannelTelegram:
		return true
	}
	return false
}

type NotificationChannel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Type      ChannelType    `gorm:"not null" json:"type"`
	Config    datatypes.JSON `json:"-"` // Type-specific keys, validated before persistence
	Enabled   bool           `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
