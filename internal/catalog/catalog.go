// Package catalog holds the live product list the storefront sells.
//
// The catalog is loaded once at startup and treated as read-only afterwards:
// the cart consults it to refresh snapshotted prices during hydration and to
// resolve product images for display.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

type Catalog struct {
	products []Product
	byID     map[string]Product
}

// New builds a catalog from an already-loaded product list.
func New(products []Product) *Catalog {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Load reads a JSON product list from disk.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}

	return New(products), nil
}

// Products returns every catalog entry in listing order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Image resolves the display image for a product id. Falls back to the empty
// string when the product is no longer in the catalog.
func (c *Catalog) Image(id string) string {
	if p, ok := c.byID[id]; ok {
		return p.Image
	}
	return ""
}
