// Package orderlog keeps a durable record of checked-out orders.
//
// The log is append-only: one row per received order, carrying the trace ids
// active when it was written so a row can be joined with its distributed
// trace. It feeds the merchant's order list; the cart itself never reads it.
package orderlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Entry is a single row in the orders table.
type Entry struct {
	// OrderID is the 4-character identifier generated at checkout.
	// Not unique by construction: collisions are accepted as negligible.
	OrderID string

	// TenantID scopes the order to a shop.
	TenantID string

	// Phone is the messaging destination the order was sent to.
	Phone string

	// Payload is the JSON-serialised items and fields as received.
	Payload string

	// Message is the URL-encoded composed order message.
	Message string

	// TraceID and SpanID identify the OpenTelemetry span active when the
	// entry was written. Empty outside a span (e.g. in tests).
	TraceID string
	SpanID  string

	CreatedAt time.Time
}

// Repository is the port for persisting order entries. The HTTP layer
// depends on this abstraction, not on SQLite directly.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	// GetLatest returns the most recent entry for an order id, or nil when
	// none exists.
	GetLatest(ctx context.Context, orderID string) (*Entry, error)
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
}

// NewEntry builds an Entry with trace info extracted from the active span in
// ctx. Missing spans leave the trace fields empty; callers handle that
// gracefully.
func NewEntry(ctx context.Context, orderID, tenantID, phone, payload, message string) *Entry {
	entry := &Entry{
		OrderID:   orderID,
		TenantID:  tenantID,
		Phone:     phone,
		Payload:   payload,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		entry.TraceID = sc.TraceID().String()
		entry.SpanID = sc.SpanID().String()
	}

	return entry
}
