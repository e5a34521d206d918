// Package cart holds the cart state container and its session registry.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	"github.com/MoaeadAlhosami/STREETWEER/internal/kvstore"
	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
)

// StorageKey is the slot the cart is persisted under.
const StorageKey = "cart-storage"

// storageVersion is written alongside the items so the slot format can evolve.
const storageVersion = 0

// persistedCart is the on-disk envelope: {"state":{"items":[...]},"version":0}.
type persistedCart struct {
	State struct {
		Items []domain.CartItem `json:"items"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store is an ordered, mutex-guarded list of cart lines that re-persists
// itself to a key-value slot after every mutation. Persistence is best
// effort: write failures are logged and never surface to callers.
type Store struct {
	mu     sync.Mutex
	items  []domain.CartItem
	kv     kvstore.Store
	key    string
	logger *slog.Logger
}

// NewStore creates an empty store bound to key in kv. Call Hydrate to load
// previously persisted lines.
func NewStore(kv kvstore.Store, key string, logger *slog.Logger) *Store {
	if kv == nil {
		kv = kvstore.Null{}
	}
	if key == "" {
		key = StorageKey
	}
	return &Store{
		items:  []domain.CartItem{},
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Key returns the storage key of the store.
func (s *Store) Key() string {
	return s.key
}

// Hydrate replaces the in-memory lines with the persisted ones. Unreadable or
// undecodable slots leave the store empty; only context cancellation is
// returned as an error.
func (s *Store) Hydrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.logger.WarnContext(ctx, "failed to read cart slot",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if !ok {
		return nil
	}

	var p persistedCart
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.WarnContext(ctx, "failed to decode cart slot",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		return nil
	}

	items, dropped, merged := normalizeLines(p.State.Items)
	if dropped > 0 || merged > 0 {
		s.logger.WarnContext(ctx, "cart slot contained invalid lines",
			slog.String("key", s.key),
			slog.Int("dropped", dropped),
			slog.Int("merged", merged),
		)
	}
	s.items = items
	return nil
}

// normalizeLines drops lines with a quantity below 1 and folds lines sharing
// a LineKey into the first one seen. Merged quantities saturate at MaxInt.
func normalizeLines(in []domain.CartItem) (out []domain.CartItem, dropped, merged int) {
	out = make([]domain.CartItem, 0, len(in))
	index := make(map[domain.LineKey]int, len(in))
	for _, item := range in {
		if item.Quantity < 1 {
			dropped++
			continue
		}
		if i, ok := index[item.Key()]; ok {
			out[i].Quantity = addQuantity(out[i].Quantity, item.Quantity)
			merged++
			continue
		}
		index[item.Key()] = len(out)
		out = append(out, item)
	}
	return out, dropped, merged
}

func addQuantity(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// AddItem adds quantity of product in size. An existing line with the same
// product id and size has its quantity increased; otherwise a new line is
// appended at the end. An increase that would overflow int is rejected and
// leaves the line unchanged.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int, size string) ([]domain.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.LineKey{ProductID: product.ID, Size: size}
	if i := s.indexOf(key); i >= 0 {
		if s.items[i].Quantity > math.MaxInt-quantity {
			return nil, apperrors.InvalidInput("quantity is too large")
		}
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, domain.CartItem{
			Product:      product,
			Quantity:     quantity,
			SelectedSize: size,
		})
	}

	s.persist(ctx, "add")
	return s.snapshot(), nil
}

// UpdateQty sets the quantity of the matching line, clamped to at least 1.
// Unknown lines are left alone.
func (s *Store) UpdateQty(ctx context.Context, id string, quantity int, size string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	if i := s.indexOf(domain.LineKey{ProductID: id, Size: size}); i >= 0 {
		s.items[i].Quantity = quantity
	}

	s.persist(ctx, "update")
	return s.snapshot()
}

// RemoveItem deletes the matching line. Unknown lines are left alone.
func (s *Store) RemoveItem(ctx context.Context, id, size string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(domain.LineKey{ProductID: id, Size: size}); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}

	s.persist(ctx, "remove")
	return s.snapshot()
}

// ClearCart removes every line.
func (s *Store) ClearCart(ctx context.Context) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.CartItem{}

	s.persist(ctx, "clear")
	return s.snapshot()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Summary returns the subtotal and item count of the current lines.
func (s *Store) Summary() domain.Summary {
	return domain.Summarize(s.Items())
}

// indexOf must be called with mu held.
func (s *Store) indexOf(key domain.LineKey) int {
	for i := range s.items {
		if s.items[i].Key() == key {
			return i
		}
	}
	return -1
}

// snapshot must be called with mu held.
func (s *Store) snapshot() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// persist writes the full line list to the slot. It runs under mu so slot
// writes happen in mutation order. Must be called with mu held.
func (s *Store) persist(ctx context.Context, op string) {
	cartMutations.WithLabelValues(op).Inc()

	if err := s.write(ctx); err != nil {
		cartPersistFailures.Inc()
		s.logger.WarnContext(ctx, "failed to persist cart",
			slog.String("key", s.key),
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) write(ctx context.Context) error {
	var p persistedCart
	p.State.Items = s.items
	p.Version = storageVersion

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}
