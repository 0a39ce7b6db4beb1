package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"otcpharm/m/domain"
	"otcpharm/m/internal/store"
)

// UserService syncs authenticated identities into the store. The upsert
// is first-write-wins: once a user row exists for an external id, later
// syncs return it unchanged regardless of the profile fields supplied.
type UserService struct {
	store *store.Store
	log   *zap.Logger
}

func NewUserService(st *store.Store, log *zap.Logger) *UserService {
	return &UserService{store: st, log: log}
}

// Sync upserts a user keyed by the external identity id. Returns the
// stored row and whether it was created by this call.
func (s *UserService) Sync(ctx context.Context, user domain.User) (*domain.User, bool, error) {
	existing, err := s.store.GetUser(ctx, user.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	user.Role = domain.RoleCustomer
	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, false, err
	}
	s.log.Info("synced new user", zap.String("user_id", created.ID))
	return created, true, nil
}

// Get returns the stored user for an external id.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
