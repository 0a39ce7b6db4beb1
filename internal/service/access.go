package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"otcpharm/m/domain"
	"otcpharm/m/internal/store"
)

// AccessService resolves which pharmacy a caller may act on and enforces
// the single-owner invariants around inventory and pharmacy setup.
type AccessService struct {
	store *store.Store
	log   *zap.Logger
}

func NewAccessService(st *store.Store, log *zap.Logger) *AccessService {
	return &AccessService{store: st, log: log}
}

// ResolvePharmacy returns the caller's linked pharmacy id. A user without
// a linkage (or not yet synced) is reported as needing setup, which read
// paths treat as an empty result rather than an error.
func (s *AccessService) ResolvePharmacy(ctx context.Context, userID string) (pharmacyID string, needsSetup bool, err error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}
	if user.PharmacyID == nil || *user.PharmacyID == "" {
		return "", true, nil
	}
	return *user.PharmacyID, false, nil
}

// AuthorizeInventory loads the target item and checks that it belongs to
// the caller's pharmacy. Not-found is decided before the ownership
// comparison so a missing id never reads as a permission problem.
func (s *AccessService) AuthorizeInventory(ctx context.Context, userID, itemID string) (*domain.InventoryItem, error) {
	item, err := s.store.GetInventoryItem(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	pharmacyID, needsSetup, err := s.ResolvePharmacy(ctx, userID)
	if err != nil {
		return nil, err
	}
	if needsSetup || item.PharmacyID != pharmacyID {
		return nil, ErrUnauthorized
	}
	return item, nil
}

// SetupPharmacy creates a placeholder pharmacy for an owner-less user,
// links it, and promotes the user to pharmacy_owner. A user who already
// has a pharmacy gets the existing linkage back unchanged.
//
// The create-then-link sequence is two separate writes with no rollback;
// a failure in between leaves an orphaned pharmacy. Accepted risk.
func (s *AccessService) SetupPharmacy(ctx context.Context, userID string) (pharmacyID string, created bool, err error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, ErrNotFound
	}
	if err != nil {
		return "", false, err
	}

	if user.PharmacyID != nil && *user.PharmacyID != "" {
		return *user.PharmacyID, false, nil
	}

	name := "My"
	if user.FirstName != "" {
		name = user.FirstName
	}
	pharmacy, err := s.store.CreatePharmacy(ctx, domain.Pharmacy{
		Name:          name + " Pharmacy",
		Address:       "TBD",
		Phone:         "TBD",
		Hours:         "24/7",
		IsOpen24Hours: true,
		IsActive:      true,
	})
	if err != nil {
		return "", false, err
	}

	if _, err := s.store.AssignUserPharmacy(ctx, userID, pharmacy.ID, domain.RolePharmacyOwner); err != nil {
		s.log.Warn("pharmacy created but user linkage failed",
			zap.String("user_id", userID), zap.String("pharmacy_id", pharmacy.ID), zap.Error(err))
		return "", false, err
	}
	return pharmacy.ID, true, nil
}

// AssignPharmacy links an existing pharmacy to the user and promotes
// them, for the manual onboarding path.
func (s *AccessService) AssignPharmacy(ctx context.Context, userID, pharmacyID string) (*domain.User, error) {
	if _, err := s.store.GetPharmacy(ctx, pharmacyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user, err := s.store.AssignUserPharmacy(ctx, userID, pharmacyID, domain.RolePharmacyOwner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
