package domain

// InventoryItem links a pharmacy to a medication it stocks. Only the user
// whose pharmacy matches PharmacyID may mutate or delete the item.
type InventoryItem struct {
	ID            string   `db:"id" json:"id"`
	PharmacyID    string   `db:"pharmacy_id" json:"pharmacy_id"`
	MedicationID  string   `db:"medication_id" json:"medication_id"`
	Quantity      int64    `db:"quantity" json:"quantity"`
	Price         float64  `db:"price" json:"price"`
	OriginalPrice *float64 `db:"original_price" json:"original_price,omitempty"`
	InStock       bool     `db:"in_stock" json:"in_stock"`
	ExpiryDate    *string  `db:"expiry_date" json:"expiry_date,omitempty"`
	BatchNumber   *string  `db:"batch_number" json:"batch_number,omitempty"`
	LastUpdated   string   `db:"last_updated" json:"last_updated"`
}
