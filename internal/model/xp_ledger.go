package model

import "time"

// XPLedger is the authoritative per-user XP record. TotalXP only ever grows
// and CurrentLevel is derived from it on every write.
type XPLedger struct {
	UID          string    `gorm:"column:uid;primaryKey;size:128"`
	TotalXP      int       `gorm:"column:total_xp;not null;default:0"`
	CurrentLevel int       `gorm:"column:current_level;not null;default:1"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (XPLedger) TableName() string {
	return "user_xp_ledgers"
}
