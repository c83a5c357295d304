package model

import "time"

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
	ListingStatusClosed ListingStatus = "closed"
)

// Listing is a marketplace offer (gear, supplements, memberships).
type Listing struct {
	ID          uint64        `gorm:"primaryKey;autoIncrement"`
	SellerUID   string        `gorm:"column:seller_uid;size:128;index;not null"`
	Title       string        `gorm:"size:120;not null"`
	Description string        `gorm:"type:text;not null"`
	Price       uint          `gorm:"not null"`
	ImageURL    *string       `gorm:"column:image_url;size:512"`
	Status      ListingStatus `gorm:"column:status;size:32;not null"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime"`
}

func (Listing) TableName() string {
	return "listings"
}
