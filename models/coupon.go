package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a user's active discount. A user holds at most one coupon.
type Coupon struct {
	UserID      string          `gorm:"type:varchar(128);primaryKey" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	ActivatedAt time.Time       `gorm:"not null" json:"activated_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"-"`
}

// CouponView is what the coupon screen shows.
type CouponView struct {
	Coupon
	DisplayAmount string    `json:"display_amount"`
	ExpiresAt     time.Time `json:"expires_at"`
	Expired       bool      `json:"expired"`
}

// ActivateCouponRequest is the payload for POST /coupon.
type ActivateCouponRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CouponActivatedEvent is published to SNS when points are exchanged for a coupon.
type CouponActivatedEvent struct {
	EventType   string    `json:"event_type"`
	UserID      string    `json:"user_id"`
	Amount      string    `json:"amount"`
	PointsSpent int       `json:"points_spent"`
	Timestamp   time.Time `json:"timestamp"`
}
