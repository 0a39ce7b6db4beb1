package service

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"otcpharm/m/domain"
	"otcpharm/m/internal/database"
	"otcpharm/m/internal/migrations"
	"otcpharm/m/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *sqlx.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db))
	return store.New(db), db
}

func createUser(t *testing.T, st *store.Store, id, email, firstName string) *domain.User {
	t.Helper()
	user, err := st.CreateUser(context.Background(), domain.User{
		ID:        id,
		Email:     email,
		FirstName: firstName,
		Role:      domain.RoleCustomer,
	})
	require.NoError(t, err)
	return user
}

func createMedication(t *testing.T, st *store.Store, name, dosage string, price float64) *domain.Medication {
	t.Helper()
	medication, err := st.CreateMedication(context.Background(), domain.Medication{
		Name:   name,
		Dosage: dosage,
		Price:  price,
		IsOTC:  true,
	})
	require.NoError(t, err)
	return medication
}

func setMedicationPrice(t *testing.T, db *sqlx.DB, id string, price float64) {
	t.Helper()
	_, err := db.Exec(`UPDATE medications SET price = $1 WHERE id = $2`, price, id)
	require.NoError(t, err)
}
