package cart

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gensol-dev/storefront/internal/analytics"
	"github.com/gensol-dev/storefront/internal/catalog"
	"github.com/gensol-dev/storefront/internal/storage"
)

// recorder captures analytics events for assertions.
type recorder struct {
	mu      sync.Mutex
	added   []recordedEvent
	removed []recordedEvent
}

type recordedEvent struct {
	productID string
	count     int
}

func (r *recorder) AddToCart(_ context.Context, p catalog.Product, _ []catalog.Variant, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, recordedEvent{productID: p.ID, count: count})
}

func (r *recorder) RemoveFromCart(_ context.Context, p catalog.Product, _ []catalog.Variant, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, recordedEvent{productID: p.ID, count: count})
}

func (r *recorder) Checkout(_ context.Context, _ string, _ []analytics.OrderItem) {}

func newTestService(cat *catalog.Catalog, store storage.Store, events analytics.Logger) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(cat, store, "cartItems:test", events, log)
}

func waitForSnapshot(t *testing.T, store storage.Store, check func([]Item) bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		raw, err := store.Get(context.Background(), "cartItems:test")
		if err != nil || raw == "" {
			return false
		}
		items, err := DecodeSnapshot(raw)
		if err != nil {
			return false
		}
		return check(items)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	p1 := testProduct("p1", 100, catalog.TypeAvailable)

	t.Run("repeated adds merge into a single entry", func(t *testing.T) {
		events := &recorder{}
		svc := newTestService(catalog.New(nil), storage.NewMemory(), events)

		svc.Add(ctx, p1, nil, 1, "")
		svc.Add(ctx, p1, nil, 3, "")

		items := svc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 4, items[0].Count)

		// The analytics events carry the added quantities, not the total.
		require.Len(t, events.added, 2)
		assert.Equal(t, 1, events.added[0].count)
		assert.Equal(t, 3, events.added[1].count)
	})

	t.Run("duplicate add retains the original variants and note", func(t *testing.T) {
		svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})

		original := []catalog.Variant{{Title: "Large", Price: decimal.NewFromInt(10)}}
		svc.Add(ctx, p1, original, 1, "sin sal")
		svc.Add(ctx, p1, []catalog.Variant{{Title: "Small"}}, 1, "otra nota")

		items := svc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, original, items[0].Variants)
		assert.Equal(t, "sin sal", items[0].Note)
	})

	t.Run("distinct products keep distinct entries in insertion order", func(t *testing.T) {
		svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})

		svc.Add(ctx, testProduct("a", 10, catalog.TypeAvailable), nil, 1, "")
		svc.Add(ctx, testProduct("b", 20, catalog.TypeAvailable), nil, 1, "")

		items := svc.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].Product.ID)
		assert.Equal(t, "b", items[1].Product.ID)
	})

	t.Run("count below one is clamped to one", func(t *testing.T) {
		svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})

		svc.Add(ctx, p1, nil, 0, "")

		items := svc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Count)
	})
}

func TestService_Decrease(t *testing.T) {
	ctx := context.Background()
	p1 := testProduct("p1", 100, catalog.TypeAvailable)

	t.Run("at count one the entry is removed", func(t *testing.T) {
		events := &recorder{}
		svc := newTestService(catalog.New(nil), storage.NewMemory(), events)

		item := svc.Add(ctx, p1, nil, 1, "")
		svc.Decrease(ctx, item.ID)

		assert.Empty(t, svc.Items())
		// The removal event reports the pre-decrement quantity.
		require.Len(t, events.removed, 1)
		assert.Equal(t, 2, events.removed[0].count)
	})

	t.Run("above one the count goes down and the entry stays", func(t *testing.T) {
		svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})

		item := svc.Add(ctx, p1, nil, 3, "")
		svc.Decrease(ctx, item.ID)

		items := svc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Count)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})
		svc.Add(ctx, p1, nil, 1, "")

		svc.Decrease(ctx, "missing")

		assert.Len(t, svc.Items(), 1)
	})
}

func TestService_Increase(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})

	item := svc.Add(ctx, testProduct("p1", 100, catalog.TypeAvailable), nil, 1, "")
	svc.Increase(ctx, item.ID)
	svc.Increase(ctx, "missing")

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Count)
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	p1 := testProduct("p1", 100, catalog.TypeAvailable)

	t.Run("removes the entry and reports count plus one", func(t *testing.T) {
		events := &recorder{}
		svc := newTestService(catalog.New(nil), storage.NewMemory(), events)

		item := svc.Add(ctx, p1, nil, 3, "")
		svc.Remove(ctx, item.ID)

		assert.Empty(t, svc.Items())
		require.Len(t, events.removed, 1)
		assert.Equal(t, 4, events.removed[0].count)
	})

	t.Run("absent id leaves the cart unchanged", func(t *testing.T) {
		events := &recorder{}
		svc := newTestService(catalog.New(nil), storage.NewMemory(), events)
		svc.Add(ctx, p1, nil, 1, "")

		svc.Remove(ctx, "missing")

		assert.Len(t, svc.Items(), 1)
		assert.Empty(t, events.removed)
	})
}

func TestService_RemoveAll(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})

	svc.Add(ctx, testProduct("a", 10, catalog.TypeAvailable), nil, 1, "")
	svc.Add(ctx, testProduct("b", 20, catalog.TypeAvailable), nil, 2, "")
	svc.RemoveAll(ctx)

	assert.Empty(t, svc.Items())
}

func TestService_Persistence(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	svc := newTestService(catalog.New(nil), store, &recorder{})

	svc.Add(ctx, testProduct("p1", 100, catalog.TypeAvailable), nil, 2, "")

	waitForSnapshot(t, store, func(items []Item) bool {
		return len(items) == 1 && items[0].Count == 2
	})

	svc.RemoveAll(ctx)

	waitForSnapshot(t, store, func(items []Item) bool {
		return len(items) == 0
	})
}

func TestService_Hydrate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, store storage.Store, cat *catalog.Catalog) {
		t.Helper()
		svc := newTestService(cat, store, &recorder{})
		svc.Add(ctx, testProduct("p1", 100, catalog.TypeAvailable), []catalog.Variant{{Title: "Large", Price: decimal.NewFromInt(10)}}, 2, "nota")
		svc.Add(ctx, testProduct("p2", 50, catalog.TypeAvailable), nil, 1, "")
		waitForSnapshot(t, store, func(items []Item) bool { return len(items) == 2 })
	}

	t.Run("round trip against an unchanged catalog", func(t *testing.T) {
		cat := catalog.New([]catalog.Product{
			testProduct("p1", 100, catalog.TypeAvailable),
			testProduct("p2", 50, catalog.TypeAvailable),
		})
		store := storage.NewMemory()
		seed(t, store, cat)

		restored := newTestService(cat, store, &recorder{})
		restored.Hydrate(ctx)

		items := restored.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "p1", items[0].Product.ID)
		assert.Equal(t, 2, items[0].Count)
		assert.Equal(t, "nota", items[0].Note)
		require.Len(t, items[0].Variants, 1)
		assert.Equal(t, "Large", items[0].Variants[0].Title)
		assert.Equal(t, "p2", items[1].Product.ID)
	})

	t.Run("items for deleted products are dropped", func(t *testing.T) {
		full := catalog.New([]catalog.Product{
			testProduct("p1", 100, catalog.TypeAvailable),
			testProduct("p2", 50, catalog.TypeAvailable),
		})
		store := storage.NewMemory()
		seed(t, store, full)

		// p2 is gone from the catalog now.
		shrunk := catalog.New([]catalog.Product{testProduct("p1", 100, catalog.TypeAvailable)})
		restored := newTestService(shrunk, store, &recorder{})
		restored.Hydrate(ctx)

		items := restored.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].Product.ID)
	})

	t.Run("prices are refreshed to catalog-current values", func(t *testing.T) {
		old := catalog.New([]catalog.Product{
			testProduct("p1", 100, catalog.TypeAvailable),
			testProduct("p2", 50, catalog.TypeAvailable),
		})
		store := storage.NewMemory()
		seed(t, store, old)

		repriced := catalog.New([]catalog.Product{
			testProduct("p1", 120, catalog.TypeAvailable),
			testProduct("p2", 50, catalog.TypeAvailable),
		})
		restored := newTestService(repriced, store, &recorder{})
		restored.Hydrate(ctx)

		items := restored.Items()
		require.Len(t, items, 2)
		assert.True(t, items[0].Product.Price.Equal(decimal.NewFromInt(120)))
	})

	t.Run("unreadable snapshot hydrates to an empty cart", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(ctx, "cartItems:test", "not a snapshot"))

		svc := newTestService(catalog.New(nil), store, &recorder{})
		svc.Hydrate(ctx)

		assert.Empty(t, svc.Items())
	})

	t.Run("empty store hydrates to an empty cart", func(t *testing.T) {
		svc := newTestService(catalog.New(nil), storage.NewMemory(), &recorder{})
		svc.Hydrate(ctx)
		assert.Empty(t, svc.Items())
	})
}
