package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/middleware"
	"github.com/yashrajoria/shop-backend/models"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
	"github.com/yashrajoria/shop-backend/usecases"
)

// ProductController serves the product list, detail, category and
// favourites screens.
type ProductController struct {
	productService   services.ProductService
	favouriteService services.FavouriteService
}

func NewProductController(productService services.ProductService, favouriteService services.FavouriteService) *ProductController {
	return &ProductController{productService: productService, favouriteService: favouriteService}
}

// ToggleFilterRequest is the payload for POST /filters/toggle. A missing
// Categories map starts from every category switched on; a given one must
// carry exactly the four category titles.
type ToggleFilterRequest struct {
	Categories map[string]bool `json:"categories"`
	Key        string          `json:"key" binding:"required"`
}

type addFavouriteRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
}

func toProductViews(products []models.Product) []models.ProductView {
	views := make([]models.ProductView, len(products))
	for i, p := range products {
		views[i] = models.NewProductView(p)
	}
	return views
}

// ListProducts handles GET /products.
// Query: category, sort (name_asc|name_desc|price_asc|price_desc), minPrice,
// maxPrice and categories (comma separated titles, e.g. "Men,Women").
func (pc *ProductController) ListProducts(c *gin.Context) {
	q, err := parseProductQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	stream := pc.productService.Products(ctx, middleware.OptionalUserID(c), q)
	renderOutcome(c, outcome.Last(outcome.Map(ctx, stream, toProductViews)))
}

func parseProductQuery(c *gin.Context) (services.ProductQuery, error) {
	q := services.ProductQuery{Category: c.DefaultQuery("category", models.CategoryAll)}
	if !models.IsKnownCategory(q.Category) {
		return q, badQuery("Unknown category")
	}

	order, err := usecases.ParseProductOrder(c.Query("sort"))
	if err != nil {
		return q, badQuery("Invalid sort value")
	}
	q.Order = order

	if q.MinPrice, err = priceParam(c, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = priceParam(c, "maxPrice"); err != nil {
		return q, err
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return q, badQuery("minPrice cannot exceed maxPrice")
	}

	if raw, ok := c.GetQuery("categories"); ok {
		filter := models.DefaultCategoryFilter()
		for title := range filter {
			filter[title] = false
		}
		for _, title := range strings.Split(raw, ",") {
			title = strings.TrimSpace(title)
			if title == "" {
				continue
			}
			if _, known := filter[title]; !known {
				return q, badQuery("Unknown category " + strconv.Quote(title))
			}
			filter[title] = true
		}
		q.Categories = filter
	}
	return q, nil
}

func badQuery(message string) error {
	return apperrors.New(http.StatusBadRequest, message, nil)
}

func priceParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	price, err := models.ParsePrice(raw)
	if err != nil || price.IsNegative() {
		return nil, badQuery("Invalid " + name)
	}
	return &price, nil
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		_ = c.Error(badQuery("Invalid product ID"))
		return
	}

	ctx := c.Request.Context()
	stream := pc.productService.Product(ctx, middleware.OptionalUserID(c), id)
	renderOutcome(c, outcome.Last(outcome.Map(ctx, stream, models.NewProductView)))
}

// ListCategories handles GET /categories.
func (pc *ProductController) ListCategories(c *gin.Context) {
	renderOutcome(c, outcome.Last(pc.productService.Categories(c.Request.Context())))
}

// ToggleFilter handles POST /filters/toggle.
func (pc *ProductController) ToggleFilter(c *gin.Context) {
	var req ToggleFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if req.Categories == nil {
		req.Categories = models.DefaultCategoryFilter()
	}
	if !models.IsCategoryFilter(req.Categories) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Categories must list Men, Women, Jewelery and Electronics"})
		return
	}
	if !models.IsCategoryTitle(req.Key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category " + strconv.Quote(req.Key)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": usecases.ToggleCheckbox(req.Categories, req.Key)})
}

// ListFavourites handles GET /favourites.
func (pc *ProductController) ListFavourites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	stream := pc.productService.Favourites(ctx, userID)
	renderOutcome(c, outcome.Last(outcome.Map(ctx, stream, toProductViews)))
}

// AddFavourite handles POST /favourites.
func (pc *ProductController) AddFavourite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req addFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	fav, svcErr := pc.favouriteService.Add(c.Request.Context(), userID, req.ProductID)
	if svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"favourite": fav})
}

// RemoveFavourite handles DELETE /favourites/:product_id.
func (pc *ProductController) RemoveFavourite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if svcErr := pc.favouriteService.Remove(c.Request.Context(), userID, productID); svcErr != nil {
		renderServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favourite removed"})
}
