package model

import "time"

// UserAchievement marks a catalog achievement as unlocked for a user. A row
// exists only once per (uid, achievement) pair; absence means locked.
type UserAchievement struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UID           string    `gorm:"column:uid;size:128;not null;uniqueIndex:idx_uid_achievement"`
	AchievementID string    `gorm:"column:achievement_id;size:64;not null;uniqueIndex:idx_uid_achievement"`
	UnlockedAt    time.Time `gorm:"autoCreateTime"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
