package store

import (
	"context"

	"github.com/google/uuid"

	"otcpharm/m/domain"
)

// ListMedications returns the catalog, optionally restricted to
// over-the-counter rows.
func (s *Store) ListMedications(ctx context.Context, otcOnly bool) ([]domain.Medication, error) {
	query := `SELECT id, name, description, strength, dosage, manufacturer, category, price,
                     is_otc, requires_prescription, image_url, created_at
              FROM medications`
	if otcOnly {
		query += ` WHERE is_otc = 1`
	}
	query += ` ORDER BY name`
	medications := []domain.Medication{}
	if err := s.db.SelectContext(ctx, &medications, query); err != nil {
		return nil, err
	}
	return medications, nil
}

func (s *Store) GetMedication(ctx context.Context, id string) (*domain.Medication, error) {
	var medication domain.Medication
	err := s.db.GetContext(ctx, &medication,
		`SELECT id, name, description, strength, dosage, manufacturer, category, price,
                is_otc, requires_prescription, image_url, created_at
         FROM medications WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &medication, nil
}

// GetMedicationByName supports the skip-if-present seeding path.
func (s *Store) GetMedicationByName(ctx context.Context, name string) (*domain.Medication, error) {
	var medication domain.Medication
	err := s.db.GetContext(ctx, &medication,
		`SELECT id, name, description, strength, dosage, manufacturer, category, price,
                is_otc, requires_prescription, image_url, created_at
         FROM medications WHERE name = $1`, name)
	if err != nil {
		return nil, err
	}
	return &medication, nil
}

func (s *Store) CreateMedication(ctx context.Context, medication domain.Medication) (*domain.Medication, error) {
	if medication.ID == "" {
		medication.ID = uuid.NewString()
	}
	medication.CreatedAt = now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO medications (id, name, description, strength, dosage, manufacturer, category, price,
                                  is_otc, requires_prescription, image_url, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		medication.ID, medication.Name, medication.Description, medication.Strength, medication.Dosage,
		medication.Manufacturer, medication.Category, medication.Price,
		medication.IsOTC, medication.RequiresPrescription, medication.ImageURL, medication.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &medication, nil
}
