// Package analytics is the event sink for shopping behavior.
//
// Events are fire-and-forget: emitting one never fails a cart mutation or a
// checkout.
package analytics

import (
	"context"
	"log/slog"

	"github.com/gensol-dev/storefront/internal/catalog"
)

// OrderItem is the reduced line-item shape attached to checkout events.
type OrderItem struct {
	ProductID string
	Title     string
	Count     int
}

type Logger interface {
	AddToCart(ctx context.Context, product catalog.Product, variants []catalog.Variant, count int)
	RemoveFromCart(ctx context.Context, product catalog.Product, variants []catalog.Variant, count int)
	Checkout(ctx context.Context, orderID string, items []OrderItem)
}

type slogLogger struct {
	log *slog.Logger
}

// NewSlogLogger returns a Logger that emits structured, trace-correlated log
// events.
func NewSlogLogger(log *slog.Logger) Logger {
	return &slogLogger{log: log}
}

func (l *slogLogger) AddToCart(ctx context.Context, product catalog.Product, variants []catalog.Variant, count int) {
	l.log.InfoContext(ctx, "add_to_cart",
		"product_id", product.ID,
		"product_title", product.Title,
		"variants", variantTitles(variants),
		"count", count,
	)
}

func (l *slogLogger) RemoveFromCart(ctx context.Context, product catalog.Product, variants []catalog.Variant, count int) {
	l.log.InfoContext(ctx, "remove_from_cart",
		"product_id", product.ID,
		"product_title", product.Title,
		"variants", variantTitles(variants),
		"count", count,
	)
}

func (l *slogLogger) Checkout(ctx context.Context, orderID string, items []OrderItem) {
	total := 0
	for _, it := range items {
		total += it.Count
	}
	l.log.InfoContext(ctx, "checkout",
		"order_id", orderID,
		"items", len(items),
		"quantity", total,
	)
}

func variantTitles(variants []catalog.Variant) []string {
	titles := make([]string, len(variants))
	for i, v := range variants {
		titles[i] = v.Title
	}
	return titles
}
