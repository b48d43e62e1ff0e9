package fakturo

import (
	"context"
	"fmt"
	"net/http"
)

// GetProducts retrieves the product catalog
func (c *Client) GetProducts(ctx context.Context) ([]*Product, error) {
	list, err := c.callList(ctx, http.MethodGet, "products.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products := make([]*Product, 0, len(list))
	for _, data := range list {
		products = append(products, ProductFromMap(data))
	}

	c.logger.Debug().Int("count", len(products)).Msg("Retrieved products from Fakturo")
	return products, nil
}

// GetProduct retrieves a single product by id
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	obj, err := c.callMap(ctx, http.MethodGet, fmt.Sprintf("products/%d.json", id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return ProductFromMap(obj), nil
}

// CreateProduct adds a product to the catalog and returns the stored
// version.
func (c *Client) CreateProduct(ctx context.Context, product *Product) (*Product, error) {
	obj, err := c.callMap(ctx, http.MethodPost, "products.json", product.Serialize(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return ProductFromMap(obj), nil
}
