package usecases

import (
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/shop-backend/models"
)

// JoinCartWithCatalog pairs every cart record with its catalog product.
// Records pointing at products the catalog no longer has are dropped.
func JoinCartWithCatalog(records []models.CartRecord, products []models.Product) []models.CartLineItem {
	catalog := indexProducts(products)
	lines := make([]models.CartLineItem, 0, len(records))
	for _, r := range records {
		p, ok := catalog[r.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLineItem{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  r.Quantity,
		})
	}
	return lines
}

// CartTotal sums price times quantity over the lines.
func CartTotal(lines []models.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func indexProducts(products []models.Product) map[int]models.Product {
	idx := make(map[int]models.Product, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}
