package model

import "time"

// Place is a venue shown on the map (gyms, parks, crossfit boxes).
type Place struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:120;not null"`
	Category     string    `gorm:"size:64;index"`
	Address      string    `gorm:"size:255"`
	Lat          float64   `gorm:"column:lat;not null"`
	Lng          float64   `gorm:"column:lng;not null"`
	CreatedByUID string    `gorm:"column:created_by_uid;size:128;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Place) TableName() string {
	return "places"
}
