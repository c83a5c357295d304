package model

import "time"

type PostLike struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	PostID    uint64    `gorm:"column:post_id;not null;uniqueIndex:idx_post_user"`
	UserUID   string    `gorm:"column:user_uid;size:128;not null;uniqueIndex:idx_post_user"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
