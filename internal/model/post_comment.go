package model

import "time"

type PostComment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	PostID    uint64    `gorm:"column:post_id;index;not null"`
	UserUID   string    `gorm:"column:user_uid;size:128;index;not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostComment) TableName() string {
	return "post_comments"
}
