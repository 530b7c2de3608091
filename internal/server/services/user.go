// Package services contains server-side business logic. This file implements
// UserService: create, point lookup, bounded listing, update and delete of
// user records.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/facevault/internal/dbx"
	"github.com/dmitrijs2005/facevault/internal/server/models"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/repomanager"
)

// Listing bounds applied when the caller supplies none (or negative values).
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// UserFields carries caller-supplied user attributes for Create and Update.
// Generated fields (id, date_added) are never part of it.
type UserFields struct {
	Name     string
	Email    string
	Phone    string
	Birthday string
}

// UserService provides record operations over the users repository. Each
// mutating operation is its own atomic unit of work: Create is a single
// insert, Update and Delete run their read-then-write inside one
// transaction.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService on top of the given connection and
// repository manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Create inserts a new user. The returned record carries the generated id
// and creation timestamp. A duplicate email or phone yields
// common.ErrorConflict.
func (s *UserService) Create(ctx context.Context, f UserFields) (*models.User, error) {
	user := &models.User{Name: f.Name, Email: f.Email, Phone: f.Phone, Birthday: f.Birthday}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// GetByID returns the user with the given id or common.ErrorNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

// List returns users in insertion order. Negative bounds fall back to the
// defaults (skip 0, limit 100).
func (s *UserService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if limit < 0 {
		limit = DefaultLimit
	}
	repo := s.repomanager.Users(s.db)
	result, err := repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}

// Update loads the user, merges the supplied fields and writes the record
// back, returning the updated row. A field is applied only when its value is
// truthy (non-empty string): an empty value leaves the stored one unchanged
// rather than clearing it. This mirrors the behavior of the system being
// replaced; callers that need to blank a field cannot do it through Update.
func (s *UserService) Update(ctx context.Context, id int64, f UserFields) (*models.User, error) {
	var updated *models.User
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error getting user: %w", err)
		}

		if f.Name != "" {
			u.Name = f.Name
		}
		if f.Email != "" {
			u.Email = f.Email
		}
		if f.Phone != "" {
			u.Phone = f.Phone
		}
		if f.Birthday != "" {
			u.Birthday = f.Birthday
		}

		if err := repo.Update(ctx, u); err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}
		updated = u
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user and returns the record as it existed immediately
// before deletion. The read and the delete share one transaction.
func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	var deleted *models.User
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error getting user: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		deleted = u
		return nil
	}); err != nil {
		return nil, err
	}
	return deleted, nil
}
