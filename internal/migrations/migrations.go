package migrations

import (
	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the marketplace backend.
// The unique constraints on carts(user_id) and cart_items(cart_id,
// medication_id) back the lookup-retry in the cart service: concurrent
// first access cannot produce duplicate carts or duplicate line items.
func Run(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            profile_image_url TEXT,
            role TEXT NOT NULL DEFAULT 'customer',
            pharmacy_id TEXT REFERENCES pharmacies(id),
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS pharmacies (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            hours TEXT NOT NULL DEFAULT '24/7',
            is_open_24_hours INTEGER NOT NULL DEFAULT 1,
            is_verified INTEGER NOT NULL DEFAULT 0,
            is_active INTEGER NOT NULL DEFAULT 1,
            created_at TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS medications (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            strength TEXT NOT NULL DEFAULT '',
            dosage TEXT NOT NULL DEFAULT '',
            manufacturer TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            price REAL NOT NULL DEFAULT 0,
            is_otc INTEGER NOT NULL DEFAULT 1,
            requires_prescription INTEGER NOT NULL DEFAULT 0,
            image_url TEXT,
            created_at TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS inventory (
            id TEXT PRIMARY KEY,
            pharmacy_id TEXT NOT NULL REFERENCES pharmacies(id),
            medication_id TEXT NOT NULL REFERENCES medications(id),
            quantity INTEGER NOT NULL DEFAULT 0,
            price REAL NOT NULL,
            original_price REAL,
            in_stock INTEGER NOT NULL DEFAULT 1,
            expiry_date TEXT,
            batch_number TEXT,
            last_updated TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS carts (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL UNIQUE,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id TEXT PRIMARY KEY,
            cart_id TEXT NOT NULL REFERENCES carts(id),
            medication_id TEXT NOT NULL REFERENCES medications(id),
            medication_name TEXT NOT NULL,
            dosage TEXT NOT NULL DEFAULT '',
            quantity INTEGER NOT NULL DEFAULT 1,
            unit_price REAL NOT NULL DEFAULT 0,
            total_price REAL NOT NULL DEFAULT 0,
            UNIQUE(cart_id, medication_id)
        );`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            pharmacy_id TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'created',
            total_amount REAL NOT NULL DEFAULT 0,
            delivery_address TEXT NOT NULL DEFAULT '',
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            medication_id TEXT NOT NULL REFERENCES medications(id),
            medication_name TEXT NOT NULL,
            dosage TEXT NOT NULL DEFAULT '',
            quantity INTEGER NOT NULL DEFAULT 1,
            unit_price REAL NOT NULL DEFAULT 0,
            total_price REAL NOT NULL DEFAULT 0
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
