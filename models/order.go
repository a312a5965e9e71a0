package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is an order as persisted. Products maps the product id, as a
// string, to the ordered quantity.
type OrderRecord struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"type:varchar(128);not null;index" json:"user_id"`
	PlacedAt  time.Time       `gorm:"not null;index" json:"placed_at"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Products  map[string]int  `gorm:"serializer:json;type:jsonb;not null" json:"products"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the table name stable regardless of the struct name.
func (OrderRecord) TableName() string { return "orders" }

// OrderLineItem is one product of an order joined with the catalog.
type OrderLineItem struct {
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Order is the order history view model. IsExpanded is UI state only.
type Order struct {
	ID         string          `json:"id"`
	PlacedAt   time.Time       `json:"placed_at"`
	Total      decimal.Decimal `json:"total"`
	Items      []OrderLineItem `json:"items"`
	IsExpanded bool            `json:"is_expanded"`
}

// ToggleOrderRequest is the payload for POST /orders/toggle.
type ToggleOrderRequest struct {
	OrderID string  `json:"order_id" binding:"required"`
	Orders  []Order `json:"orders"`
}

// OrderPlacedEvent is published to SNS once an order has been stored.
type OrderPlacedEvent struct {
	EventType    string    `json:"event_type"`
	OrderID      string    `json:"order_id"`
	UserID       string    `json:"user_id"`
	Total        string    `json:"total"`
	ItemCount    int       `json:"item_count"`
	PointsEarned int       `json:"points_earned"`
	Timestamp    time.Time `json:"timestamp"`
}
