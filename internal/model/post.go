package model

import "time"

type Post struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	AuthorUID string    `gorm:"column:author_uid;size:128;index;not null"`
	Body      string    `gorm:"type:text;not null"`
	ImageURL  *string   `gorm:"column:image_url;size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}
