// Package store is the gateway to the relational store. Methods are thin
// pass-throughs by primary or foreign key; sql.ErrNoRows is returned
// as-is and mapped to a domain outcome by the caller.
package store

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// Store bundles all entity collections behind one handle.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store over an open database.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
