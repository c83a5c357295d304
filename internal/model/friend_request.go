package model

import "time"

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// FriendRequest becomes a match once accepted.
type FriendRequest struct {
	ID          uint64              `gorm:"primaryKey;autoIncrement"`
	FromUID     string              `gorm:"column:from_uid;size:128;not null;uniqueIndex:idx_from_to"`
	ToUID       string              `gorm:"column:to_uid;size:128;not null;uniqueIndex:idx_from_to"`
	Status      FriendRequestStatus `gorm:"column:status;size:32;not null"`
	RespondedAt *time.Time          `gorm:"column:responded_at"`
	CreatedAt   time.Time           `gorm:"autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
