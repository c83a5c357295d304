package model

import "time"

type Challenge struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement"`
	CreatorUID  string     `gorm:"column:creator_uid;size:128;index;not null"`
	Title       string     `gorm:"size:120;not null"`
	Description string     `gorm:"type:text"`
	Category    string     `gorm:"size:64"`
	StartsAt    *time.Time `gorm:"column:starts_at"`
	EndsAt      *time.Time `gorm:"column:ends_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Challenge) TableName() string {
	return "challenges"
}

type ChallengeParticipant struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	ChallengeID uint64    `gorm:"column:challenge_id;not null;uniqueIndex:idx_challenge_user"`
	UserUID     string    `gorm:"column:user_uid;size:128;not null;uniqueIndex:idx_challenge_user"`
	JoinedAt    time.Time `gorm:"autoCreateTime"`
}

func (ChallengeParticipant) TableName() string {
	return "challenge_participants"
}
