package store

import (
	"context"

	"otcpharm/m/domain"
)

// GetUser looks up a user by the external identity id.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, email, first_name, last_name, profile_image_url, role, pharmacy_id, created_at, updated_at
         FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user row. The caller supplies the id (the
// external identity id); timestamps are set here.
func (s *Store) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, pharmacy_id, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.FirstName, user.LastName, user.ProfileImageURL,
		user.Role, user.PharmacyID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AssignUserPharmacy links a pharmacy to a user and sets the given role,
// then returns the updated row.
func (s *Store) AssignUserPharmacy(ctx context.Context, userID, pharmacyID, role string) (*domain.User, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET pharmacy_id = $1, role = $2, updated_at = $3 WHERE id = $4`,
		pharmacyID, role, now(), userID)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}
