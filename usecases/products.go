package usecases

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yashrajoria/shop-backend/models"
)

// ProductOrder selects how a product list is sorted.
type ProductOrder int

const (
	NameAscending ProductOrder = iota
	NameDescending
	PriceAscending
	PriceDescending
)

var productOrderNames = map[string]ProductOrder{
	"name_asc":   NameAscending,
	"name_desc":  NameDescending,
	"price_asc":  PriceAscending,
	"price_desc": PriceDescending,
}

// ParseProductOrder reads a sort query value. Empty means NameAscending.
func ParseProductOrder(s string) (ProductOrder, error) {
	if s == "" {
		return NameAscending, nil
	}
	o, ok := productOrderNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid sort value %q", s)
	}
	return o, nil
}

// SortProducts returns a stably sorted copy of products.
func SortProducts(order ProductOrder, products []models.Product) []models.Product {
	sorted := append([]models.Product(nil), products...)

	var less func(a, b models.Product) bool
	switch order {
	case NameDescending:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Title) > strings.ToLower(b.Title) }
	case PriceAscending:
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case PriceDescending:
		less = func(a, b models.Product) bool { return a.Price.GreaterThan(b.Price) }
	default:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// FilterByCategoryAndPrice keeps products whose category title is switched on
// in categoryFilter and whose price lies in [minPrice, maxPrice].
func FilterByCategoryAndPrice(products []models.Product, minPrice, maxPrice decimal.Decimal, categoryFilter map[string]bool) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !categoryFilter[models.CategoryTitle(p.Category)] {
			continue
		}
		if p.Price.LessThan(minPrice) || p.Price.GreaterThan(maxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// FilterByPriceRange keeps products priced within [minPrice, maxPrice]. A
// missing bound yields an empty list rather than an open range.
func FilterByPriceRange(products []models.Product, minPrice, maxPrice *decimal.Decimal) []models.Product {
	filtered := []models.Product{}
	if minPrice == nil || maxPrice == nil {
		return filtered
	}
	for _, p := range products {
		if p.Price.GreaterThanOrEqual(*minPrice) && p.Price.LessThanOrEqual(*maxPrice) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SetFavouriteFlags returns a copy of products with IsFavourite set from favourites.
func SetFavouriteFlags(products []models.Product, favourites []models.FavouriteRecord) []models.Product {
	ids := favouriteIDs(favourites)
	flagged := make([]models.Product, len(products))
	for i, p := range products {
		p.IsFavourite = ids[p.ID]
		flagged[i] = p
	}
	return flagged
}

// FilterToFavourites keeps only the user's favourite products, flagged as such.
func FilterToFavourites(products []models.Product, favourites []models.FavouriteRecord) []models.Product {
	ids := favouriteIDs(favourites)
	kept := []models.Product{}
	for _, p := range products {
		if ids[p.ID] {
			p.IsFavourite = true
			kept = append(kept, p)
		}
	}
	return kept
}

func favouriteIDs(favourites []models.FavouriteRecord) map[int]bool {
	ids := make(map[int]bool, len(favourites))
	for _, f := range favourites {
		ids[f.ProductID] = true
	}
	return ids
}
