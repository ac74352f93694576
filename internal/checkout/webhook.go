package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/gensol-dev/storefront/internal/cart"
	"github.com/gensol-dev/storefront/internal/payment"
	"github.com/gensol-dev/storefront/internal/tenant"
)

// webhookPayload is the structured order POSTed to the tenant's webhook.
type webhookPayload struct {
	Phone      string              `json:"phone"`
	Items      []cart.Item         `json:"items"`
	OrderID    string              `json:"orderId"`
	Fields     []tenant.Field      `json:"fields,omitempty"`
	Preference *payment.Preference `json:"preference,omitempty"`
}

// fireWebhook posts the payload to the tenant's webhook without blocking the
// checkout. Errors are logged, never surfaced.
func (s *Service) fireWebhook(ctx context.Context, payload webhookPayload) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := s.postWebhook(ctx, payload); err != nil {
			s.log.WarnContext(ctx, "checkout: webhook", "order_id", payload.OrderID, "error", err)
		}
	}()
}

func (s *Service) postWebhook(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tenant.Hook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.NewString())

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post webhook: status %d", resp.StatusCode)
	}
	return nil
}
