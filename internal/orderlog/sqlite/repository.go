// Package sqlite provides a SQLite-backed implementation of
// orderlog.Repository.
//
// WAL mode is enabled on Open so that readers never block writers: checkout
// hooks write while the merchant's order list may be reading.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gensol-dev/storefront/internal/orderlog"

	// Register the pure-Go SQLite driver; no CGO needed in the build image.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    -- Surrogate primary key, auto-incremented by SQLite.
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- 4-character order identifier generated at checkout.
    -- Not UNIQUE: collisions are probabilistically accepted.
    order_id    TEXT NOT NULL,

    tenant_id   TEXT NOT NULL,
    phone       TEXT NOT NULL DEFAULT '',

    -- JSON-serialised items and fields as received from the hook.
    payload     TEXT NOT NULL DEFAULT '',

    -- URL-encoded composed order message.
    message     TEXT NOT NULL DEFAULT '',

    -- W3C trace/span ids from the active OTel span, for correlation.
    trace_id    TEXT NOT NULL DEFAULT '',
    span_id     TEXT NOT NULL DEFAULT '',

    -- Wall-clock timestamp (RFC3339 stored as TEXT, SQLite idiom).
    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_order_id ON orders(order_id, created_at);
CREATE INDEX IF NOT EXISTS idx_orders_tenant_id ON orders(tenant_id, created_at);
`

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends a new order entry. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *orderlog.Entry) error {
	const q = `
		INSERT INTO orders
			(order_id, tenant_id, phone, payload, message, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		entry.TenantID,
		entry.Phone,
		entry.Payload,
		entry.Message,
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save order %q: %w", entry.OrderID, err)
	}
	return nil
}

// GetLatest returns the most recent entry for an order id, or nil when none
// exists.
func (r *Repository) GetLatest(ctx context.Context, orderID string) (*orderlog.Entry, error) {
	const q = `
		SELECT order_id, tenant_id, phone, payload, message, trace_id, span_id, created_at
		FROM   orders
		WHERE  order_id = ?
		ORDER  BY created_at DESC, id DESC
		LIMIT  1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get order %q: %w", orderID, err)
	}
	return entry, nil
}

// ListRecent returns up to limit entries, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*orderlog.Entry, error) {
	const q = `
		SELECT order_id, tenant_id, phone, payload, message, trace_id, span_id, created_at
		FROM   orders
		ORDER  BY created_at DESC, id DESC
		LIMIT  ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var entries []*orderlog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan order row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate order rows: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*orderlog.Entry, error) {
	var entry orderlog.Entry
	var createdAt string
	if err := row.Scan(
		&entry.OrderID,
		&entry.TenantID,
		&entry.Phone,
		&entry.Payload,
		&entry.Message,
		&entry.TraceID,
		&entry.SpanID,
		&createdAt,
	); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse time %q: %w", createdAt, err)
	}
	entry.CreatedAt = ts
	return &entry, nil
}
