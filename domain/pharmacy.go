package domain

type Pharmacy struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Address       string `db:"address" json:"address"`
	Phone         string `db:"phone" json:"phone"`
	Hours         string `db:"hours" json:"hours"`
	IsOpen24Hours bool   `db:"is_open_24_hours" json:"is_open_24_hours"`
	IsVerified    bool   `db:"is_verified" json:"is_verified"`
	IsActive      bool   `db:"is_active" json:"is_active"`
	CreatedAt     string `db:"created_at" json:"created_at"`
}
