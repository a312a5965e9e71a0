package models

// Category ids as the catalog names them.
const (
	CategoryMen         = "men's clothing"
	CategoryWomen       = "women's clothing"
	CategoryJewelery    = "jewelery"
	CategoryElectronics = "electronics"
	CategoryAll         = "all"
)

// Category titles shown in the filter screen; these are the keys of every
// category filter map.
const (
	TitleMen         = "Men"
	TitleWomen       = "Women"
	TitleJewelery    = "Jewelery"
	TitleElectronics = "Electronics"
)

var categoryTitles = map[string]string{
	CategoryMen:         TitleMen,
	CategoryWomen:       TitleWomen,
	CategoryJewelery:    TitleJewelery,
	CategoryElectronics: TitleElectronics,
}

// CategoryTitle maps a category id to its display title. Unknown ids map to "".
func CategoryTitle(id string) string {
	return categoryTitles[id]
}

// CategoryIDs lists the concrete catalog categories in display order.
func CategoryIDs() []string {
	return []string{CategoryMen, CategoryWomen, CategoryJewelery, CategoryElectronics}
}

// IsKnownCategory reports whether id is a catalog category or the "all" pseudo-category.
func IsKnownCategory(id string) bool {
	if id == CategoryAll {
		return true
	}
	_, ok := categoryTitles[id]
	return ok
}

// DefaultCategoryFilter returns a filter map with every category included.
func DefaultCategoryFilter() map[string]bool {
	return map[string]bool{
		TitleMen:         true,
		TitleWomen:       true,
		TitleJewelery:    true,
		TitleElectronics: true,
	}
}

// IsCategoryTitle reports whether title is one of the four filter keys.
func IsCategoryTitle(title string) bool {
	for _, t := range categoryTitles {
		if t == title {
			return true
		}
	}
	return false
}

// IsCategoryFilter reports whether filter has exactly the four category
// titles as keys.
func IsCategoryFilter(filter map[string]bool) bool {
	if len(filter) != len(categoryTitles) {
		return false
	}
	for title := range filter {
		if !IsCategoryTitle(title) {
			return false
		}
	}
	return true
}
