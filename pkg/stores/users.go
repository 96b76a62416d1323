// Package stores contains the domain repositories. Each store specializes
// the generic repository for one entity and adds entity-specific composite
// operations; all of them take the connection handle explicitly.
package stores

import (
	"context"
	"errors"

	"github.com/NetSkoocKlim/storefront/pkg/models"
	"github.com/NetSkoocKlim/storefront/pkg/repository"
	"github.com/NetSkoocKlim/storefront/pkg/storage"
)

// ErrProtectedAccount is returned when deactivating an administrator.
var ErrProtectedAccount = errors.New("administrator accounts cannot be deactivated")

// UserStore provides access to user accounts.
type UserStore struct {
	repo *repository.Repository[models.User]
}

// NewUserStore creates a UserStore on the given database handle.
func NewUserStore(db *storage.DB) *UserStore {
	return &UserStore{repo: repository.New[models.User](db.Pool())}
}

// ByID returns the user with the given id, or nil when absent.
func (s *UserStore) ByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// ByUsername returns the user with the given username, or nil when absent.
func (s *UserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.FindOneOrNone(ctx, repository.Eq("username", username))
}

// All returns every user matching the conditions.
func (s *UserStore) All(ctx context.Context, conds ...repository.Condition) ([]models.User, error) {
	return s.repo.FindAll(ctx, conds...)
}

// Register inserts a new active customer account and returns its id.
// The password must already be hashed.
func (s *UserStore) Register(ctx context.Context, firstName, lastName, username, email, hashedPassword string) (int64, error) {
	return s.repo.Add(ctx, repository.Values{
		"first_name":      firstName,
		"last_name":       lastName,
		"username":        username,
		"email":           email,
		"hashed_password": hashedPassword,
		"is_active":       true,
		"is_admin":        false,
		"is_supplier":     false,
		"is_customer":     true,
	})
}

// ToggleSupplier flips the supplier flag and reports the new value.
// A user gaining the supplier role loses the plain-customer flag.
func (s *UserStore) ToggleSupplier(ctx context.Context, id int64) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, storage.ErrNotFound
	}

	nowSupplier := !user.IsSupplier
	err = s.repo.Update(ctx,
		[]repository.Condition{repository.Eq("id", id)},
		repository.Values{
			"is_supplier": nowSupplier,
			"is_customer": !nowSupplier,
		})
	if err != nil {
		return false, err
	}
	return nowSupplier, nil
}

// ToggleActive flips the active flag (soft delete / restore) and reports
// the new value. Administrator accounts are protected.
func (s *UserStore) ToggleActive(ctx context.Context, id int64) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, storage.ErrNotFound
	}
	if user.IsAdmin {
		return false, ErrProtectedAccount
	}

	nowActive := !user.IsActive
	err = s.repo.Update(ctx,
		[]repository.Condition{repository.Eq("id", id)},
		repository.Values{"is_active": nowActive})
	if err != nil {
		return false, err
	}
	return nowActive, nil
}
