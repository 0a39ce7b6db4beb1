package store

import (
	"context"

	"github.com/google/uuid"

	"otcpharm/m/domain"
)

const inventoryColumns = `id, pharmacy_id, medication_id, quantity, price, original_price,
                          in_stock, expiry_date, batch_number, last_updated`

// ListInventory returns every item stocked by a pharmacy.
func (s *Store) ListInventory(ctx context.Context, pharmacyID string) ([]domain.InventoryItem, error) {
	items := []domain.InventoryItem{}
	err := s.db.SelectContext(ctx, &items,
		`SELECT `+inventoryColumns+` FROM inventory WHERE pharmacy_id = $1`, pharmacyID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetInventoryItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := s.db.GetContext(ctx, &item,
		`SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.LastUpdated = now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inventory (id, pharmacy_id, medication_id, quantity, price, original_price,
                                in_stock, expiry_date, batch_number, last_updated)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.PharmacyID, item.MedicationID, item.Quantity, item.Price, item.OriginalPrice,
		item.InStock, item.ExpiryDate, item.BatchNumber, item.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	return err
}
