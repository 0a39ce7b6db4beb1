package domain

// Order lifecycle states.
const (
	OrderCreated    = "created"
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderDispatched = "dispatched"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderCompleted  = "completed"
)

// Order and OrderItem are part of the data model but not yet exposed by
// any endpoint; checkout converts cart items into order items.
type Order struct {
	ID              string  `db:"id" json:"id"`
	UserID          string  `db:"user_id" json:"user_id"`
	PharmacyID      string  `db:"pharmacy_id" json:"pharmacy_id"`
	Status          string  `db:"status" json:"status"`
	TotalAmount     float64 `db:"total_amount" json:"total_amount"`
	DeliveryAddress string  `db:"delivery_address" json:"delivery_address"`
	CreatedAt       string  `db:"created_at" json:"created_at"`
	UpdatedAt       string  `db:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	ID             string  `db:"id" json:"id"`
	OrderID        string  `db:"order_id" json:"order_id"`
	MedicationID   string  `db:"medication_id" json:"medication_id"`
	MedicationName string  `db:"medication_name" json:"medication_name"`
	Dosage         string  `db:"dosage" json:"dosage"`
	Quantity       int64   `db:"quantity" json:"quantity"`
	UnitPrice      float64 `db:"unit_price" json:"unit_price"`
	TotalPrice     float64 `db:"total_price" json:"total_price"`
}
