package usecases

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yashrajoria/shop-backend/models"
)

// OrderOrder selects how the order history is sorted.
type OrderOrder int

const (
	DateDescending OrderOrder = iota
	DateAscending
)

// ParseOrderOrder reads a sort query value. Empty means newest first.
func ParseOrderOrder(s string) (OrderOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date_desc":
		return DateDescending, nil
	case "date_asc":
		return DateAscending, nil
	}
	return 0, fmt.Errorf("invalid sort value %q", s)
}

// JoinOrdersWithCatalog builds order view models from stored orders. Each
// product entry is looked up by its numeric id; entries whose id does not
// parse or is missing from the catalog are left out of the order, the same
// way the cart join treats them. Items are ordered by product id.
func JoinOrdersWithCatalog(records []models.OrderRecord, products []models.Product) []models.Order {
	catalog := indexProducts(products)
	orders := make([]models.Order, 0, len(records))
	for _, r := range records {
		items := make([]models.OrderLineItem, 0, len(r.Products))
		for rawID, qty := range r.Products {
			id, err := strconv.Atoi(rawID)
			if err != nil {
				continue
			}
			p, ok := catalog[id]
			if !ok {
				continue
			}
			items = append(items, models.OrderLineItem{
				ProductID: p.ID,
				Title:     p.Title,
				Price:     p.Price,
				Image:     p.Image,
				Quantity:  qty,
			})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

		orders = append(orders, models.Order{
			ID:       r.ID,
			PlacedAt: r.PlacedAt,
			Total:    r.Total,
			Items:    items,
		})
	}
	return orders
}

// SortOrders returns a stably sorted copy of orders by placement time.
func SortOrders(order OrderOrder, orders []models.Order) []models.Order {
	sorted := append([]models.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == DateAscending {
			return sorted[i].PlacedAt.Before(sorted[j].PlacedAt)
		}
		return sorted[i].PlacedAt.After(sorted[j].PlacedAt)
	})
	return sorted
}

// ToggleOrderExpansion flips IsExpanded on the order with orderID and leaves
// every other order untouched.
func ToggleOrderExpansion(orderID string, orders []models.Order) []models.Order {
	toggled := make([]models.Order, len(orders))
	for i, o := range orders {
		if o.ID == orderID {
			o.IsExpanded = !o.IsExpanded
		}
		toggled[i] = o
	}
	return toggled
}
