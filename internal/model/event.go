package model

import "time"

type Event struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement"`
	CreatorUID  string     `gorm:"column:creator_uid;size:128;index;not null"`
	Title       string     `gorm:"size:120;not null"`
	Description string     `gorm:"type:text"`
	Location    string     `gorm:"size:255"`
	StartsAt    *time.Time `gorm:"column:starts_at;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

type EventRegistration struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	EventID      uint64    `gorm:"column:event_id;not null;uniqueIndex:idx_event_user"`
	UserUID      string    `gorm:"column:user_uid;size:128;not null;uniqueIndex:idx_event_user"`
	RegisteredAt time.Time `gorm:"autoCreateTime"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}
