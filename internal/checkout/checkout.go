// Package checkout turns the aggregated cart into an order handoff: it
// composes the receipt message, optionally creates a payment preference,
// notifies the configured hooks, and hands back the guaranteed messaging
// redirect.
//
// Collaborator failures never block the redirect. There are no retries and
// no rollback; the cart is not cleared afterwards.
package checkout

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gensol-dev/storefront/internal/analytics"
	"github.com/gensol-dev/storefront/internal/cart"
	"github.com/gensol-dev/storefront/internal/orderhook"
	"github.com/gensol-dev/storefront/internal/payment"
	"github.com/gensol-dev/storefront/internal/pkg/i18n"
	"github.com/gensol-dev/storefront/internal/tenant"
)

type Service struct {
	tenant    tenant.Tenant
	prices    *i18n.PriceFormatter
	payment   *payment.Client   // nil when the tenant has no online payments
	orders    *orderhook.Client // nil when no order API is configured
	analytics analytics.Logger
	httpc     *http.Client
	log       *slog.Logger
}

func NewService(tn tenant.Tenant, prices *i18n.PriceFormatter, pay *payment.Client, orders *orderhook.Client, an analytics.Logger, log *slog.Logger) *Service {
	return &Service{
		tenant:    tn,
		prices:    prices,
		payment:   pay,
		orders:    orders,
		analytics: an,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

// Result is what the UI needs after checkout: the order id, the messaging
// redirect that always works, and the payment preference when one was
// created.
type Result struct {
	OrderID     string
	RedirectURL string
	Preference  *payment.Preference
}

// Checkout runs the handoff for the current items. It always completes: a
// failed preference or hook call is logged and skipped, and the messaging
// redirect is returned regardless.
func (s *Service) Checkout(ctx context.Context, items []cart.Item, fields []tenant.Field) Result {
	orderID := cart.NewOrderID()

	s.analytics.Checkout(ctx, orderID, toOrderItems(items))

	message := cart.ComposeMessage(s.prices, items, orderID, fields)

	var pref *payment.Preference
	if s.payment != nil && s.tenant.Mercadopago && tenant.IsMercadoPagoSelected(fields) {
		created, err := s.payment.CreatePreference(ctx, s.tenant.Slug, items, orderID)
		if err != nil {
			s.log.WarnContext(ctx, "checkout: create payment preference", "order_id", orderID, "error", err)
		} else {
			pref = created
		}
	}

	// One webhook POST per checkout, carrying the preference when present.
	if s.tenant.Hook != "" {
		s.fireWebhook(ctx, webhookPayload{
			Phone:      s.tenant.Phone,
			Items:      items,
			OrderID:    orderID,
			Fields:     fields,
			Preference: pref,
		})
	}

	if s.orders != nil {
		s.fireOrderHook(ctx, orderhook.Payload{
			OrderID: orderID,
			Items:   items,
			Fields:  fields,
			Phone:   s.tenant.Phone,
			Message: url.QueryEscape(message),
		})
	}

	return Result{
		OrderID:     orderID,
		RedirectURL: messagingURL(s.tenant.Phone, message),
		Preference:  pref,
	}
}

func (s *Service) fireOrderHook(ctx context.Context, payload orderhook.Payload) {
	// Detached from the request context: the handoff must not be cancelled
	// when the HTTP response is sent.
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := s.orders.Notify(ctx, s.tenant.ID, payload); err != nil {
			s.log.WarnContext(ctx, "checkout: order hook", "order_id", payload.OrderID, "error", err)
		}
	}()
}

// messagingURL builds the deep link the UI opens in a new browsing context,
// with the receipt pre-filled.
func messagingURL(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

func toOrderItems(items []cart.Item) []analytics.OrderItem {
	out := make([]analytics.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, analytics.OrderItem{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			Count:     item.Count,
		})
	}
	return out
}
