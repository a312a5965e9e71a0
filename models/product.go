package models

import "github.com/shopspring/decimal"

// Product is a catalog entry as served to the app. IsFavourite is derived per
// user and never comes from the catalog itself.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	IsFavourite bool            `json:"is_favourite"`
}

// ProductView is the presentation shape of a Product with the price already
// formatted for display.
type ProductView struct {
	Product
	DisplayPrice string `json:"display_price"`
}

// NewProductView formats a product for display.
func NewProductView(p Product) ProductView {
	return ProductView{Product: p, DisplayPrice: FormatPrice(p.Price)}
}
