// Package seed populates reference data: the starter OTC catalog and a
// demo pharmacy. It is a one-shot utility; rows already present are left
// untouched.
package seed

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"otcpharm/m/domain"
	"otcpharm/m/internal/store"
)

var otcCatalog = []domain.Medication{
	{Name: "Paracetamol", Strength: "500mg", Manufacturer: "Emzor Pharmaceuticals", Category: "Pain Relief",
		Description: "Paracetamol is used to treat mild to moderate pain and to reduce fever", Price: 500},
	{Name: "Ibuprofen", Strength: "400mg", Manufacturer: "May & Baker", Category: "Pain Relief",
		Description: "Ibuprofen is used to reduce fever and treat pain or inflammation", Price: 650},
	{Name: "Vitamin C", Strength: "1000mg", Manufacturer: "HealthGuard", Category: "Supplements",
		Description: "Vitamin C supplement for immune system support", Price: 1200},
	{Name: "Aspirin", Strength: "300mg", Manufacturer: "Bayer", Category: "Pain Relief",
		Description: "Aspirin is used for pain relief and to reduce inflammation", Price: 450},
	{Name: "Loratadine", Strength: "10mg", Manufacturer: "GlaxoSmithKline", Category: "Antihistamine",
		Description: "Loratadine is an antihistamine used to relieve allergy symptoms", Price: 800},
	{Name: "Omeprazole", Strength: "20mg", Manufacturer: "AstraZeneca", Category: "Gastrointestinal",
		Description: "Omeprazole is used to treat symptoms of gastroesophageal reflux disease", Price: 950},
	{Name: "Cetirizine", Strength: "10mg", Manufacturer: "UCB Pharma", Category: "Antihistamine",
		Description: "Cetirizine relieves hay fever and allergy symptoms", Price: 700},
	{Name: "Antacid Suspension", Strength: "200ml", Manufacturer: "Pfizer", Category: "Gastrointestinal",
		Description: "Relief from heartburn, indigestion and upset stomach", Price: 1100},
}

// Run inserts the OTC catalog (skip-if-present, keyed by name) and
// ensures a demo pharmacy exists.
func Run(ctx context.Context, st *store.Store, log *zap.Logger) error {
	inserted := 0
	for _, medication := range otcCatalog {
		_, err := st.GetMedicationByName(ctx, medication.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		medication.IsOTC = true
		medication.RequiresPrescription = false
		if _, err := st.CreateMedication(ctx, medication); err != nil {
			log.Warn("unable to seed medication", zap.String("name", medication.Name), zap.Error(err))
			continue
		}
		inserted++
	}
	log.Info("seeded OTC catalog", zap.Int("inserted", inserted), zap.Int("catalog", len(otcCatalog)))

	if err := ensureDemoPharmacy(ctx, st, log); err != nil {
		return err
	}
	return nil
}

func ensureDemoPharmacy(ctx context.Context, st *store.Store, log *zap.Logger) error {
	pharmacies, err := st.ListPharmacies(ctx, false)
	if err != nil {
		return err
	}
	if len(pharmacies) > 0 {
		return nil
	}
	pharmacy, err := st.CreatePharmacy(ctx, domain.Pharmacy{
		Name:          "Demo Pharmacy",
		Address:       "123 Ocean View Drive, Coastal City",
		Phone:         "+1-555-0100",
		Hours:         "24/7",
		IsOpen24Hours: true,
		IsVerified:    true,
		IsActive:      true,
	})
	if err != nil {
		return err
	}
	log.Info("created demo pharmacy", zap.String("pharmacy_id", pharmacy.ID))
	return nil
}
