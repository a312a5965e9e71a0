package models

import "time"

// FavouriteRecord marks a product as a user's favourite.
type FavouriteRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID int       `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
