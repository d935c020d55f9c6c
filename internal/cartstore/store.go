// Package cartstore holds the customer-facing cart state: the line items a
// visitor has picked plus totals derived from them. It is the source of truth
// for guests and the fallback source for authenticated checkouts. State
// transitions are pure over the item list; persistence is an isolated side
// effect behind the Storage interface.
package cartstore

import (
	"context"
	"time"

	"webify-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Item struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryName *string         `json:"category_name,omitempty"`
}

// Store is not safe for concurrent use. All mutations are dispatched
// serially by the owning flow, mirroring a single-threaded UI loop.
type Store struct {
	storage Storage

	items         []Item
	totalQuantity int
	totalAmount   decimal.Decimal

	lastMutation time.Time
}

// New hydrates the store from storage, or starts empty when nothing is
// persisted. A storage read failure degrades to an empty cart rather than
// blocking the visitor.
func New(ctx context.Context, storage Storage) *Store {
	s := &Store{
		storage:     storage,
		totalAmount: decimal.Zero,
	}

	items, err := storage.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("cart hydrate failed, starting empty", zap.Error(err))
		return s
	}

	s.items = items
	s.recompute()
	return s
}

// Add merges by item id, summing quantities. A non-positive quantity on the
// incoming item defaults to 1.
func (s *Store) Add(ctx context.Context, item Item) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	merged := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}

	s.afterMutation(ctx)
}

// Remove deletes the entry with the given id. Removing an unknown id is a
// no-op.
func (s *Store) Remove(ctx context.Context, id uint) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept

	s.afterMutation(ctx)
}

// Clear empties the cart and erases persisted storage.
func (s *Store) Clear(ctx context.Context) {
	s.items = nil
	s.totalQuantity = 0
	s.totalAmount = decimal.Zero
	s.lastMutation = time.Now()

	if err := s.storage.Clear(ctx); err != nil {
		logger.FromCtx(ctx).Warn("cart storage clear failed", zap.Error(err))
	}
}

// Replace swaps the entire item list, used when a server cart wins a
// reconciliation pass.
func (s *Store) Replace(ctx context.Context, items []Item) {
	s.items = append([]Item(nil), items...)
	s.afterMutation(ctx)
}

func (s *Store) Items() []Item {
	return append([]Item(nil), s.items...)
}

func (s *Store) TotalQuantity() int {
	return s.totalQuantity
}

func (s *Store) TotalAmount() decimal.Decimal {
	return s.totalAmount
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// LastMutation reports when the cart last changed locally. The synchronizer
// uses it for last-write-wins reconciliation against the server cart.
func (s *Store) LastMutation() time.Time {
	return s.lastMutation
}

func (s *Store) afterMutation(ctx context.Context) {
	s.recompute()
	s.lastMutation = time.Now()

	// Persistence failures never surface to the visitor; local state is
	// already updated and logging is the only escalation.
	if err := s.storage.Save(ctx, s.items); err != nil {
		logger.FromCtx(ctx).Warn("cart persist failed", zap.Error(err))
	}
}

// recompute derives the totals by full reduction over the items. There are
// no incremental counters to drift.
func (s *Store) recompute() {
	qty := 0
	amount := decimal.Zero
	for _, it := range s.items {
		qty += it.Quantity
		amount = amount.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	s.totalQuantity = qty
	s.totalAmount = amount
}
