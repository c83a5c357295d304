package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type Order struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement"`
	ListingID   uint64      `gorm:"column:listing_id;index;not null"`
	BuyerUID    string      `gorm:"column:buyer_uid;size:128;index;not null"`
	SellerUID   string      `gorm:"column:seller_uid;size:128;index;not null"`
	Status      OrderStatus `gorm:"column:status;size:32;not null"`
	PaidAmount  uint        `gorm:"column:paid_amount;not null"`
	CompletedAt *time.Time  `gorm:"column:completed_at"`
	CreatedAt   time.Time   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
