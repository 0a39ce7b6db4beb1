package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"otcpharm/m/domain"
	"otcpharm/m/internal/store"
)

// CartService maintains per-user cart contents with authoritative
// pricing: a line's total is always quantity times unit price, computed
// here and never trusted from input.
//
// Pricing policy on increment: the unit price is re-read from the
// medication's current catalog price and the total recomputed from it.
// Quantity updates via UpdateItemQuantity keep the stored unit price.
type CartService struct {
	store *store.Store
	log   *zap.Logger
}

func NewCartService(st *store.Store, log *zap.Logger) *CartService {
	return &CartService{store: st, log: log}
}

// CartView is a cart with its lines and the derived grand total.
type CartView struct {
	Cart  domain.Cart       `json:"cart"`
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// getOrCreateCart finds the user's cart, creating it on first access.
// A lost race on the insert hits the unique constraint on user_id, in
// which case the winning row is fetched instead.
func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.store.GetCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	cart, createErr := s.store.CreateCart(ctx, userID)
	if createErr == nil {
		return cart, nil
	}
	if cart, err := s.store.GetCartByUser(ctx, userID); err == nil {
		return cart, nil
	}
	return nil, createErr
}

// GetCart returns the user's cart, its items, and the sum of line totals.
// An empty cart totals zero.
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartView, error) {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}
	return &CartView{Cart: *cart, Items: items, Total: total}, nil
}

// AddItem puts a medication in the user's cart. A first add snapshots the
// medication's name, dosage and price; adding the same medication again
// increments the quantity and reprices the line at the medication's
// current price.
func (s *CartService) AddItem(ctx context.Context, userID, medicationID string, quantity int64) (*domain.CartItem, error) {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	medication, err := s.store.GetMedication(ctx, medicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetCartItemByMedication(ctx, cart.ID, medicationID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var item *domain.CartItem
	if existing != nil {
		newQuantity := existing.Quantity + quantity
		item, err = s.store.UpdateCartItem(ctx, existing.ID, newQuantity,
			medication.Price, float64(newQuantity)*medication.Price)
		if err != nil {
			return nil, err
		}
	} else {
		item, err = s.store.CreateCartItem(ctx, domain.CartItem{
			CartID:         cart.ID,
			MedicationID:   medication.ID,
			MedicationName: medication.Name,
			Dosage:         medication.Dosage,
			Quantity:       quantity,
			UnitPrice:      medication.Price,
			TotalPrice:     float64(quantity) * medication.Price,
		})
		if err != nil {
			// Concurrent first add for the same medication: the unique
			// constraint on (cart_id, medication_id) collapses the race
			// into an increment.
			existing, getErr := s.store.GetCartItemByMedication(ctx, cart.ID, medicationID)
			if getErr != nil {
				return nil, err
			}
			newQuantity := existing.Quantity + quantity
			item, err = s.store.UpdateCartItem(ctx, existing.ID, newQuantity,
				medication.Price, float64(newQuantity)*medication.Price)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := s.store.TouchCart(ctx, cart.ID); err != nil {
		s.log.Warn("failed to touch cart", zap.String("cart_id", cart.ID), zap.Error(err))
	}
	return item, nil
}

// authorizeItem loads a cart item and verifies the parent cart belongs to
// the caller. Not-found wins over unauthorized.
func (s *CartService) authorizeItem(ctx context.Context, userID, itemID string) (*domain.CartItem, error) {
	item, err := s.store.GetCartItem(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	cart, err := s.store.GetCart(ctx, item.CartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, ErrUnauthorized
	}
	return item, nil
}

// UpdateItemQuantity sets a line's quantity, recomputing the total from
// the stored unit price, not the medication's current price.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int64) (*domain.CartItem, error) {
	item, err := s.authorizeItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateCartItem(ctx, item.ID, quantity,
		item.UnitPrice, float64(quantity)*item.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := s.store.TouchCart(ctx, item.CartID); err != nil {
		s.log.Warn("failed to touch cart", zap.String("cart_id", item.CartID), zap.Error(err))
	}
	return updated, nil
}

// RemoveItem deletes a line after verifying ownership.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	item, err := s.authorizeItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCartItem(ctx, item.ID); err != nil {
		return err
	}
	if err := s.store.TouchCart(ctx, item.CartID); err != nil {
		s.log.Warn("failed to touch cart", zap.String("cart_id", item.CartID), zap.Error(err))
	}
	return nil
}
