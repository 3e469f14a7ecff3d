package model

import "time"

type Order struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderNumber string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	UserID      int64     `gorm:"not null;index" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// OrderSummaryは返却用の形。日時はAPI共通フォーマットに揃える。
type OrderSummary struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"order_number"`
	UserID      int64  `json:"user_id"`
	CreatedAt   string `json:"created_at"`
}

func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		CreatedAt:   o.CreatedAt.Format(TimeLayout),
	}
}
