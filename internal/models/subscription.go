package models

// Subscription links a monitor to the channels that want its status changes.
type Subscription struct {
	MonitorID uint `gorm:"primaryKey" json:"monitor_id"`
	ChannelID uint `gorm:"primaryKey" json:"channel_id"`
}
