package model

import "time"

const (
	NotificationTypeXPGain      = "xp_gain"
	NotificationTypeLevelUp     = "level_up"
	NotificationTypeAchievement = "achievement"
	NotificationTypeChat        = "chat"
	NotificationTypeEvent       = "event"
	NotificationTypeOrder       = "order"
)

type Notification struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement"`
	UserUID    string     `gorm:"column:user_uid;size:128;index;not null"`
	Type       string     `gorm:"column:type;size:64;not null"`
	Title      string     `gorm:"column:title;size:255"`
	Body       string     `gorm:"column:body;type:text"`
	DurationMs int        `gorm:"column:duration_ms;not null;default:2000"`
	ReadAt     *time.Time `gorm:"column:read_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
