package cart

import (
	"context"

	"webify-be/internal/cartstore"
	"webify-be/internal/logger"

	"go.uber.org/zap"
)

// Synchronizer keeps a visitor's local cart store and the server cart in
// step. The server cart is authoritative for checkout; the local store keeps
// the UI responsive and survives server hiccups.
type Synchronizer struct {
	svc   Service
	local *cartstore.Store
}

func NewSynchronizer(svc Service, local *cartstore.Store) *Synchronizer {
	return &Synchronizer{svc: svc, local: local}
}

// FetchCart returns the server cart for the user. A user with no persisted
// cart gets an empty cart and a nil error.
func (s *Synchronizer) FetchCart(ctx context.Context, userID uint) (*Cart, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.svc.GetCart(ctx, userID)
}

// RemoveCartItem deletes the item server-side and mirrors the removal
// locally. The local mirror happens regardless of the server outcome, so the
// visitor's view updates even when the server call fails; the failure is
// logged and swallowed.
func (s *Synchronizer) RemoveCartItem(ctx context.Context, userID, itemID, productID uint) {
	if userID != 0 {
		if err := s.svc.RemoveItem(ctx, userID, itemID); err != nil {
			logger.FromCtx(ctx).Warn("server cart removal failed",
				zap.Uint("user_id", userID),
				zap.Uint("cart_item_id", itemID),
				zap.Error(err),
			)
		}
	}

	s.local.Remove(ctx, productID)
}

// AddCartItem pushes the addition server-side and mirrors it locally with the
// same swallow-on-failure contract as RemoveCartItem.
func (s *Synchronizer) AddCartItem(ctx context.Context, userID uint, item cartstore.Item) {
	if userID != 0 {
		_, err := s.svc.AddItem(ctx, userID, AddItemParams{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})
		if err != nil {
			logger.FromCtx(ctx).Warn("server cart addition failed",
				zap.Uint("user_id", userID),
				zap.Uint("product_id", item.ID),
				zap.Error(err),
			)
		}
	}

	s.local.Add(ctx, item)
}

// CollectOrderItems resolves the line items an order should be created from.
// The server cart is authoritative; the local store is the fallback when the
// server cart is empty or unreachable. ErrCartEmpty when both are empty.
func (s *Synchronizer) CollectOrderItems(ctx context.Context, userID uint) ([]cartstore.Item, error) {
	if userID != 0 {
		serverCart, err := s.svc.GetCart(ctx, userID)
		if err != nil {
			logger.FromCtx(ctx).Warn("server cart fetch failed, falling back to local",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		} else if len(serverCart.Items) > 0 {
			items := make([]cartstore.Item, 0, len(serverCart.Items))
			for _, it := range serverCart.Items {
				items = append(items, cartstore.Item{
					ID:           it.ProductID,
					Title:        it.Title,
					Price:        it.Price,
					Quantity:     it.Quantity,
					CategoryName: it.CategoryName,
				})
			}
			return items, nil
		}
	}

	local := s.local.Items()
	if len(local) == 0 {
		return nil, ErrCartEmpty
	}
	return local, nil
}

// Reconcile settles a divergence between the local and server carts with
// last-write-wins: whichever side mutated more recently overwrites the other.
func (s *Synchronizer) Reconcile(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "synchronizer"),
		zap.String("method", "Reconcile"),
		zap.Uint("user_id", userID),
	)

	serverCart, err := s.svc.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	if s.local.LastMutation().After(serverCart.UpdatedAt) {
		log.Info("local cart wins, pushing to server")
		if err := s.svc.ClearCart(ctx, userID); err != nil {
			return err
		}
		for _, it := range s.local.Items() {
			if _, err := s.svc.AddItem(ctx, userID, AddItemParams{
				ProductID: it.ID,
				Quantity:  it.Quantity,
			}); err != nil {
				return err
			}
		}
		return nil
	}

	log.Info("server cart wins, replacing local")
	items := make([]cartstore.Item, 0, len(serverCart.Items))
	for _, it := range serverCart.Items {
		items = append(items, cartstore.Item{
			ID:           it.ProductID,
			Title:        it.Title,
			Price:        it.Price,
			Quantity:     it.Quantity,
			CategoryName: it.CategoryName,
		})
	}
	s.local.Replace(ctx, items)
	return nil
}

// ClearAll empties both carts, used once an order has been placed.
func (s *Synchronizer) ClearAll(ctx context.Context, userID uint) {
	if userID != 0 {
		if err := s.svc.ClearCart(ctx, userID); err != nil {
			logger.FromCtx(ctx).Warn("server cart clear failed",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
	}
	s.local.Clear(ctx)
}
