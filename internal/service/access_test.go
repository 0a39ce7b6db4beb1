package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"otcpharm/m/domain"
)

func TestResolvePharmacy(t *testing.T) {
	st, _ := newTestStore(t)
	access := NewAccessService(st, zap.NewNop())
	ctx := context.Background()

	// Unknown and unlinked users both read as needing setup, not errors.
	_, needsSetup, err := access.ResolvePharmacy(ctx, "never-synced")
	require.NoError(t, err)
	assert.True(t, needsSetup)

	createUser(t, st, "user-1", "one@example.com", "Ada")
	_, needsSetup, err = access.ResolvePharmacy(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, needsSetup)

	pharmacy, err := st.CreatePharmacy(ctx, domain.Pharmacy{Name: "Corner Pharmacy", IsActive: true})
	require.NoError(t, err)
	_, err = st.AssignUserPharmacy(ctx, "user-1", pharmacy.ID, domain.RolePharmacyOwner)
	require.NoError(t, err)

	pharmacyID, needsSetup, err := access.ResolvePharmacy(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, needsSetup)
	assert.Equal(t, pharmacy.ID, pharmacyID)
}

func TestSetupPharmacyIdempotent(t *testing.T) {
	st, _ := newTestStore(t)
	access := NewAccessService(st, zap.NewNop())
	ctx := context.Background()

	createUser(t, st, "user-1", "one@example.com", "Ada")

	first, created, err := access.SetupPharmacy(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, created)
	require.NotEmpty(t, first)

	second, created, err := access.SetupPharmacy(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second, "repeat setup must return the same pharmacy")

	user, err := st.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePharmacyOwner, user.Role)
	require.NotNil(t, user.PharmacyID)
	assert.Equal(t, first, *user.PharmacyID)

	pharmacy, err := st.GetPharmacy(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Ada Pharmacy", pharmacy.Name)
	assert.Equal(t, "TBD", pharmacy.Address)
	assert.True(t, pharmacy.IsActive)

	pharmacies, err := st.ListPharmacies(ctx, false)
	require.NoError(t, err)
	assert.Len(t, pharmacies, 1, "repeat setup must not create a second pharmacy")
}

func TestSetupPharmacyUnknownUser(t *testing.T) {
	st, _ := newTestStore(t)
	access := NewAccessService(st, zap.NewNop())

	_, _, err := access.SetupPharmacy(context.Background(), "never-synced")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthorizeInventory(t *testing.T) {
	st, _ := newTestStore(t)
	access := NewAccessService(st, zap.NewNop())
	ctx := context.Background()

	createUser(t, st, "owner-a", "a@example.com", "Ann")
	createUser(t, st, "owner-b", "b@example.com", "Ben")

	pharmacyA, _, err := access.SetupPharmacy(ctx, "owner-a")
	require.NoError(t, err)
	_, _, err = access.SetupPharmacy(ctx, "owner-b")
	require.NoError(t, err)

	medication := createMedication(t, st, "Paracetamol", "500mg", 500)
	item, err := st.CreateInventoryItem(ctx, domain.InventoryItem{
		PharmacyID:   pharmacyA,
		MedicationID: medication.ID,
		Quantity:     10,
		Price:        500,
		InStock:      true,
	})
	require.NoError(t, err)

	got, err := access.AuthorizeInventory(ctx, "owner-a", item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = access.AuthorizeInventory(ctx, "owner-b", item.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// A missing item is not-found even for a caller who owns nothing.
	_, err = access.AuthorizeInventory(ctx, "owner-b", "no-such-item")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = access.AuthorizeInventory(ctx, "never-synced", "no-such-item")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignPharmacy(t *testing.T) {
	st, _ := newTestStore(t)
	access := NewAccessService(st, zap.NewNop())
	ctx := context.Background()

	createUser(t, st, "user-1", "one@example.com", "Ada")
	pharmacy, err := st.CreatePharmacy(ctx, domain.Pharmacy{Name: "Corner Pharmacy", IsActive: true})
	require.NoError(t, err)

	user, err := access.AssignPharmacy(ctx, "user-1", pharmacy.ID)
	require.NoError(t, err)
	require.NotNil(t, user.PharmacyID)
	assert.Equal(t, pharmacy.ID, *user.PharmacyID)
	assert.Equal(t, domain.RolePharmacyOwner, user.Role)

	_, err = access.AssignPharmacy(ctx, "user-1", "no-such-pharmacy")
	assert.ErrorIs(t, err, ErrNotFound)
}
