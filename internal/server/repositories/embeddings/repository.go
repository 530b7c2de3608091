package embeddings

import (
	"context"

	"github.com/dmitrijs2005/facevault/internal/server/models"
)

// Repository is the storage contract for embedding records. Implementations
// return common.ErrorNotFound when an id does not resolve. Vectors are
// persisted as opaque blobs (see internal/vectorx for the layout).
type Repository interface {
	Create(ctx context.Context, emb *models.Embedding) (*models.Embedding, error)
	GetByID(ctx context.Context, id int64) (*models.Embedding, error)
	List(ctx context.Context, skip, limit int) ([]models.Embedding, error)
	Update(ctx context.Context, emb *models.Embedding) error
	Delete(ctx context.Context, id int64) error
}
