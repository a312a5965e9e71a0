package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartRecord is one stored cart line.
type CartRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLineItem is a cart line joined with its catalog product.
type CartLineItem struct {
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// AddToCartRequest is the payload for POST /cart.
type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"omitempty,gte=1"`
}

// UpdateQuantityRequest is the payload for PATCH /cart/:product_id.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// CartView is the cart screen: joined lines and their total.
type CartView struct {
	Items        []CartLineItem  `json:"items"`
	Total        decimal.Decimal `json:"total"`
	DisplayTotal string          `json:"display_total"`
}
