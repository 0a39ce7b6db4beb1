package domain

// Roles a synced user can hold. Every user starts as a customer and is
// promoted when a pharmacy is linked to them.
const (
	RoleCustomer      = "customer"
	RolePharmacyOwner = "pharmacy_owner"
)

// User is a marketplace account synced from the external identity
// provider. ID is the provider's stable user identifier.
type User struct {
	ID              string  `db:"id" json:"id"`
	Email           string  `db:"email" json:"email"`
	FirstName       string  `db:"first_name" json:"first_name"`
	LastName        string  `db:"last_name" json:"last_name"`
	ProfileImageURL *string `db:"profile_image_url" json:"profile_image_url,omitempty"`
	Role            string  `db:"role" json:"role"`
	PharmacyID      *string `db:"pharmacy_id" json:"pharmacy_id,omitempty"`
	CreatedAt       string  `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt       string  `db:"updated_at" json:"updated_at,omitempty"`
}
