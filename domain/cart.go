package domain

// Cart holds a user's pending purchases. One cart per user, created
// lazily on first access.
type Cart struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// CartItem is a denormalized snapshot of a medication at the time it was
// added, plus the quantity. TotalPrice is always derived from quantity and
// unit price, never taken from client input.
type CartItem struct {
	ID             string  `db:"id" json:"id"`
	CartID         string  `db:"cart_id" json:"cart_id"`
	MedicationID   string  `db:"medication_id" json:"medication_id"`
	MedicationName string  `db:"medication_name" json:"medication_name"`
	Dosage         string  `db:"dosage" json:"dosage"`
	Quantity       int64   `db:"quantity" json:"quantity"`
	UnitPrice      float64 `db:"unit_price" json:"unit_price"`
	TotalPrice     float64 `db:"total_price" json:"total_price"`
}
