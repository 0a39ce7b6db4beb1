package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"otcpharm/m/domain"
)

func TestSyncCreatesCustomer(t *testing.T) {
	st, _ := newTestStore(t)
	users := NewUserService(st, zap.NewNop())

	user, created, err := users.Sync(context.Background(), domain.User{
		ID:        "uid-1",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "pharmacy_owner", // supplied roles are ignored
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestSyncIsFirstWriteWins(t *testing.T) {
	st, _ := newTestStore(t)
	users := NewUserService(st, zap.NewNop())
	ctx := context.Background()

	original, created, err := users.Sync(ctx, domain.User{
		ID:        "uid-1",
		Email:     "ada@example.com",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	require.True(t, created)

	replay, created, err := users.Sync(ctx, domain.User{
		ID:        "uid-1",
		Email:     "changed@example.com",
		FirstName: "Someone",
		LastName:  "Else",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, original.Email, replay.Email, "sync never overwrites existing profile fields")
	assert.Equal(t, original.FirstName, replay.FirstName)
	assert.Equal(t, original.CreatedAt, replay.CreatedAt)
}

func TestGetUnknownUser(t *testing.T) {
	st, _ := newTestStore(t)
	users := NewUserService(st, zap.NewNop())

	_, err := users.Get(context.Background(), "never-synced")
	assert.ErrorIs(t, err, ErrNotFound)
}
