// Package cart implements the storefront's order pipeline: the line-item
// aggregator, the pricing resolver, and the order message composer.
//
// The aggregator is an explicit state-owning service. It keeps at most one
// line item per product id, persists a snapshot after every mutation, and
// restores itself from storage at startup, reconciling against the live
// catalog.
package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gensol-dev/storefront/internal/analytics"
	"github.com/gensol-dev/storefront/internal/catalog"
	"github.com/gensol-dev/storefront/internal/pkg/shortid"
	"github.com/gensol-dev/storefront/internal/storage"
)

// Item is one line item: a product snapshot with the buyer's variant
// selection, quantity, and optional note. Identity is the opaque ID, not the
// product id.
type Item struct {
	ID       string            `json:"id"`
	Product  catalog.Product   `json:"product"`
	Variants []catalog.Variant `json:"variants,omitempty"`
	Count    int               `json:"count"`
	Note     string            `json:"note,omitempty"`
}

// Service owns the cart state. All mutations are synchronous with respect to
// the caller; the snapshot write they trigger is asynchronous and
// best-effort.
type Service struct {
	mu    sync.Mutex
	items map[string]Item
	// order holds item ids in insertion order. Irrelevant for pricing,
	// relevant for display.
	order []string

	catalog   *catalog.Catalog
	store     storage.Store
	key       string
	analytics analytics.Logger
	log       *slog.Logger

	// seq numbers snapshots under mu; persistMu and persistedSeq let the
	// async writer skip stale writes so a slow earlier write cannot clobber
	// a newer snapshot.
	seq          uint64
	persistMu    sync.Mutex
	persistedSeq uint64
}

func NewService(cat *catalog.Catalog, store storage.Store, key string, an analytics.Logger, log *slog.Logger) *Service {
	return &Service{
		items:     make(map[string]Item),
		catalog:   cat,
		store:     store,
		key:       key,
		analytics: an,
		log:       log,
	}
}

// Add puts count units of a product in the cart. If a line item for the same
// product already exists its count is incremented and its variants and note
// are retained; otherwise a new entry is inserted with a fresh id. The
// analytics event always carries the added quantity, not the merged total.
func (s *Service) Add(ctx context.Context, product catalog.Product, variants []catalog.Variant, count int, note string) Item {
	if count < 1 {
		count = 1
	}

	s.analytics.AddToCart(ctx, product, variants, count)

	s.mu.Lock()
	var item Item
	if id, ok := s.findProductLocked(product.ID); ok {
		item = s.items[id]
		item.Count += count
		s.items[id] = item
	} else {
		item = Item{
			ID:       shortid.New(),
			Product:  product,
			Variants: variants,
			Count:    count,
			Note:     note,
		}
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	seq, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, seq, snapshot)
	return item
}

// Remove deletes a line item. Unknown ids are a no-op, not an error.
func (s *Service) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.items, id)
	s.dropOrderLocked(id)
	seq, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	// Quantity matches the removal-via-decrease path, which reports the
	// count before the final decrement.
	s.analytics.RemoveFromCart(ctx, item.Product, item.Variants, item.Count+1)

	s.persist(ctx, seq, snapshot)
}

// Increase adds one unit to a line item. Unknown ids are a no-op.
func (s *Service) Increase(ctx context.Context, id string) {
	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	item.Count++
	s.items[id] = item
	seq, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, seq, snapshot)
}

// Decrease removes one unit from a line item. At count 1 the entry is
// removed entirely; the count never reaches 0. Unknown ids are a no-op.
func (s *Service) Decrease(ctx context.Context, id string) {
	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if item.Count == 1 {
		s.mu.Unlock()
		s.Remove(ctx, id)
		return
	}
	item.Count--
	s.items[id] = item
	seq, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, seq, snapshot)
}

// RemoveAll empties the cart in one transition.
func (s *Service) RemoveAll(ctx context.Context) {
	s.mu.Lock()
	s.items = make(map[string]Item)
	s.order = nil
	seq, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, seq, snapshot)
}

// Items returns the line items in insertion order.
func (s *Service) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Hydrate restores the cart from the persisted snapshot, once, at startup.
// Items whose product is gone from the catalog are silently dropped; the
// rest have their price refreshed to the catalog-current value and are
// re-inserted through Add, so the merge and analytics paths apply as usual.
func (s *Service) Hydrate(ctx context.Context) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.log.WarnContext(ctx, "cart: read snapshot", "error", err)
		return
	}
	if raw == "" {
		return
	}

	items, err := DecodeSnapshot(raw)
	if err != nil {
		s.log.WarnContext(ctx, "cart: discarding unreadable snapshot", "error", err)
		return
	}

	for _, item := range items {
		live, ok := s.catalog.Get(item.Product.ID)
		if !ok {
			continue
		}
		product := item.Product
		product.Price = live.Price
		s.Add(ctx, product, item.Variants, item.Count, item.Note)
	}
}

// persist writes the snapshot asynchronously. Failures are logged, never
// surfaced: losing a snapshot write costs at worst a stale cart on the next
// visit.
func (s *Service) persist(ctx context.Context, seq uint64, items []Item) {
	raw, err := EncodeSnapshot(items)
	if err != nil {
		s.log.WarnContext(ctx, "cart: encode snapshot", "error", err)
		return
	}

	// Detach from the request context so an early HTTP response does not
	// cancel the write.
	ctx = context.WithoutCancel(ctx)
	go func() {
		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if seq <= s.persistedSeq {
			// A newer snapshot already landed.
			return
		}
		s.persistedSeq = seq
		if err := s.store.Set(ctx, s.key, raw); err != nil {
			s.log.WarnContext(ctx, "cart: persist snapshot", "error", err)
		}
	}()
}

// snapshotLocked stamps and captures the current items. Callers hold mu.
func (s *Service) snapshotLocked() (uint64, []Item) {
	s.seq++
	return s.seq, s.itemsLocked()
}

func (s *Service) findProductLocked(productID string) (string, bool) {
	for _, id := range s.order {
		if s.items[id].Product.ID == productID {
			return id, true
		}
	}
	return "", false
}

func (s *Service) itemsLocked() []Item {
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Service) dropOrderLocked(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
