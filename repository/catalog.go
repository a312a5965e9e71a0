package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
)

// CatalogClient reads the remote product catalog.
type CatalogClient interface {
	// Products lists the catalog, narrowed to one category unless category is
	// empty or models.CategoryAll.
	Products(ctx context.Context, category string) ([]models.Product, error)
	Product(ctx context.Context, id int) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// HTTPCatalogClient talks to a fakestore-compatible REST catalog.
type HTTPCatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPCatalogClient(baseURL string, timeout time.Duration) *HTTPCatalogClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPCatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// catalogProduct is the catalog's wire shape. Fields the shop ignores, such
// as rating, are dropped on decode.
type catalogProduct struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

func (p catalogProduct) toModel() models.Product {
	return models.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
	}
}

func (c *HTTPCatalogClient) Products(ctx context.Context, category string) ([]models.Product, error) {
	path := "/products"
	if category != "" && category != models.CategoryAll {
		path = "/products/category/" + url.PathEscape(category)
	}

	var wire []catalogProduct
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(wire))
	for _, p := range wire {
		products = append(products, p.toModel())
	}
	return products, nil
}

func (c *HTTPCatalogClient) Product(ctx context.Context, id int) (*models.Product, error) {
	var wire *catalogProduct
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &wire); err != nil {
		return nil, err
	}
	// the catalog answers 200 with an empty body for unknown ids
	if wire == nil || wire.ID == 0 {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("product %d", id))
	}
	p := wire.toModel()
	return &p, nil
}

func (c *HTTPCatalogClient) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *HTTPCatalogClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("catalog %s", path))
	case resp.StatusCode != http.StatusOK:
		return apperrors.Wrap(apperrors.ErrCatalogUnavailable, fmt.Errorf("catalog returned %d for %s", resp.StatusCode, path))
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrCatalogUnavailable, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
