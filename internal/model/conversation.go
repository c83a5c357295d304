package model

import "time"

// Conversation is a direct chat between two users. UserAUID always holds the
// lexicographically smaller uid so a pair maps to exactly one row.
type Conversation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserAUID  string    `gorm:"column:user_a_uid;size:128;index;uniqueIndex:idx_pair" json:"userAUid"`
	UserBUID  string    `gorm:"column:user_b_uid;size:128;index;uniqueIndex:idx_pair" json:"userBUid"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}
