package store

import (
	"context"

	"github.com/google/uuid"

	"otcpharm/m/domain"
)

// GetCartByUser finds a user's cart. At most one exists per user.
func (s *Store) GetCartByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.db.GetContext(ctx, &cart,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *Store) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.db.GetContext(ctx, &cart,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart inserts an empty cart for the user. The unique constraint on
// user_id makes a concurrent duplicate insert fail; callers fall back to
// GetCartByUser when that happens.
func (s *Store) CreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart := domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now(),
	}
	cart.UpdatedAt = cart.CreatedAt
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO carts (id, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// TouchCart bumps the cart's updated_at after any item mutation.
func (s *Store) TouchCart(ctx context.Context, cartID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE carts SET updated_at = $1 WHERE id = $2`, now(), cartID)
	return err
}

const cartItemColumns = `id, cart_id, medication_id, medication_name, dosage, quantity, unit_price, total_price`

func (s *Store) ListCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	err := s.db.SelectContext(ctx, &items,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetCartItem(ctx context.Context, id string) (*domain.CartItem, error) {
	var item domain.CartItem
	err := s.db.GetContext(ctx, &item,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetCartItemByMedication finds the line for a medication within a cart,
// if one exists.
func (s *Store) GetCartItemByMedication(ctx context.Context, cartID, medicationID string) (*domain.CartItem, error) {
	var item domain.CartItem
	err := s.db.GetContext(ctx, &item,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 AND medication_id = $2`,
		cartID, medicationID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateCartItem(ctx context.Context, item domain.CartItem) (*domain.CartItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_items (id, cart_id, medication_id, medication_name, dosage, quantity, unit_price, total_price)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.CartID, item.MedicationID, item.MedicationName, item.Dosage,
		item.Quantity, item.UnitPrice, item.TotalPrice)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets a line's quantity and pricing and returns the row.
func (s *Store) UpdateCartItem(ctx context.Context, id string, quantity int64, unitPrice, totalPrice float64) (*domain.CartItem, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1, unit_price = $2, total_price = $3 WHERE id = $4`,
		quantity, unitPrice, totalPrice, id)
	if err != nil {
		return nil, err
	}
	return s.GetCartItem(ctx, id)
}

func (s *Store) DeleteCartItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	return err
}
