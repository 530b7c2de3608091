package users

import (
	"context"

	"github.com/dmitrijs2005/facevault/internal/server/models"
)

// Repository is the storage contract for user records. Implementations
// translate driver-specific failures into the sentinel errors in
// internal/common: ErrorNotFound for a missing id, ErrorConflict for a
// unique email/phone collision.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}
