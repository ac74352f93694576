// Package orderhook notifies the tenant-scoped order API so the merchant's
// backend can keep its own books. Delivery is best-effort: the caller logs
// failures and moves on.
package orderhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gensol-dev/storefront/internal/cart"
	"github.com/gensol-dev/storefront/internal/tenant"
)

// Payload is the order bookkeeping request body.
type Payload struct {
	OrderID string         `json:"orderId"`
	Items   []cart.Item    `json:"items"`
	Fields  []tenant.Field `json:"fields,omitempty"`
	Phone   string         `json:"phone"`
	// Message is the URL-encoded composed order message.
	Message string `json:"message"`
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

// Notify posts the order to the tenant's order API. Each delivery carries a
// unique id so the receiver can deduplicate.
func (c *Client) Notify(ctx context.Context, tenantID string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("orderhook: encode order %s: %w", payload.OrderID, err)
	}

	url := fmt.Sprintf("%s/tenants/%s/orders", c.baseURL, tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("orderhook: build request for order %s: %w", payload.OrderID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("orderhook: post order %s: %w", payload.OrderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("orderhook: post order %s: status %d", payload.OrderID, resp.StatusCode)
	}
	return nil
}
