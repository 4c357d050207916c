// Package cart is the visitor's shopping cart: an ordered list of line items
// mirrored into a single key-value slot.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

const StorageKey = "beyond-realms-cart"

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
	Slug     string  `json:"slug,omitempty"`
}

type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store writes to storage only after Load has completed, so an empty
// default never overwrites a saved cart.
type Store struct {
	mu       sync.Mutex
	items    []Item
	hydrated bool

	storage Storage
	key     string
	log     *slog.Logger
}

func NewStore(storage Storage, key string, log *slog.Logger) *Store {
	if key == "" {
		key = StorageKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		items:   []Item{},
		storage: storage,
		key:     key,
		log:     log.With("component", "cart", "key", key),
	}
}

// Load replaces the in-memory items with the saved ones. A missing, corrupt or
// non-array value yields an empty cart and is only logged. The returned error
// is a storage read failure; the store then stays unhydrated.
//
// The slot is written back only when the saved value had to be repaired, so
// opening a cart to read it never overwrites a concurrent write.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.Error("cart_load_failed", "reason", "storage read", "error", err)
		return err
	}

	items := []Item{}
	repaired := false
	if ok {
		var decoded []Item
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			s.log.Warn("cart_load_discarded", "reason", "saved cart is not a list of items", "error", err)
			repaired = true
		} else {
			items = normalize(decoded)
			repaired = decoded == nil || len(items) != len(decoded)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.hydrated = true
	if repaired {
		s.persistLocked(ctx)
	}
	return nil
}

// normalize drops unusable entries and merges repeated ids.
func normalize(in []Item) []Item {
	out := make([]Item, 0, len(in))
	pos := make(map[string]int, len(in))
	for _, it := range in {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		if i, seen := pos[it.ID]; seen {
			out[i].Quantity += it.Quantity
			continue
		}
		pos[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}

func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// AddItem adds one unit of item. The incoming Quantity is ignored.
func (s *Store) AddItem(ctx context.Context, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			s.persistLocked(ctx)
			return
		}
	}
	item.Quantity = 1
	s.items = append(s.items, item)
	s.persistLocked(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	s.persistLocked(ctx)
}

func (s *Store) removeLocked(id string) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// UpdateQuantity removes the item when quantity <= 0. An unknown id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
	} else {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Quantity = quantity
			}
		}
	}
	s.persistLocked(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Item{}
	s.persistLocked(ctx)
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) persistLocked(ctx context.Context) {
	if !s.hydrated {
		return
	}
	b, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error("cart_save_failed", "reason", "encode", "error", err)
		return
	}
	if err := s.storage.Set(ctx, s.key, string(b)); err != nil {
		s.log.Error("cart_save_failed", "reason", "storage write", "error", err)
	}
}
