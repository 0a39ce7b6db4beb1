package store

import (
	"context"

	"github.com/google/uuid"

	"otcpharm/m/domain"
)

// ListPharmacies returns all pharmacies, or only active ones.
func (s *Store) ListPharmacies(ctx context.Context, activeOnly bool) ([]domain.Pharmacy, error) {
	query := `SELECT id, name, address, phone, hours, is_open_24_hours, is_verified, is_active, created_at
              FROM pharmacies`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	pharmacies := []domain.Pharmacy{}
	if err := s.db.SelectContext(ctx, &pharmacies, query); err != nil {
		return nil, err
	}
	return pharmacies, nil
}

func (s *Store) GetPharmacy(ctx context.Context, id string) (*domain.Pharmacy, error) {
	var pharmacy domain.Pharmacy
	err := s.db.GetContext(ctx, &pharmacy,
		`SELECT id, name, address, phone, hours, is_open_24_hours, is_verified, is_active, created_at
         FROM pharmacies WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &pharmacy, nil
}

func (s *Store) CreatePharmacy(ctx context.Context, pharmacy domain.Pharmacy) (*domain.Pharmacy, error) {
	if pharmacy.ID == "" {
		pharmacy.ID = uuid.NewString()
	}
	pharmacy.CreatedAt = now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pharmacies (id, name, address, phone, hours, is_open_24_hours, is_verified, is_active, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		pharmacy.ID, pharmacy.Name, pharmacy.Address, pharmacy.Phone, pharmacy.Hours,
		pharmacy.IsOpen24Hours, pharmacy.IsVerified, pharmacy.IsActive, pharmacy.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &pharmacy, nil
}
