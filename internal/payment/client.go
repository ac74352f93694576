// Package payment creates payment preferences for tenants with online
// payments enabled. A preference is a provider-side checkout session; its
// init point is where the buyer's pre-opened tab gets redirected.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gensol-dev/storefront/internal/cart"
)

// Preference is the handle returned by the provider.
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type preferenceRequest struct {
	Slug    string           `json:"slug"`
	OrderID string           `json:"orderId"`
	Items   []preferenceItem `json:"items"`
}

type preferenceItem struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePreference asks the provider for a checkout preference covering the
// given items.
func (c *Client) CreatePreference(ctx context.Context, slug string, items []cart.Item, orderID string) (*Preference, error) {
	payload := preferenceRequest{
		Slug:    slug,
		OrderID: orderID,
		Items:   make([]preferenceItem, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, preferenceItem{
			Title:     item.Product.Title,
			Quantity:  item.Count,
			UnitPrice: cart.UnitPrice(item),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payment: encode preference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payment: build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment: create preference for order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("payment: create preference for order %s: status %d", orderID, resp.StatusCode)
	}

	var pref Preference
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("payment: decode preference response: %w", err)
	}
	return &pref, nil
}
