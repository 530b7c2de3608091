package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/facevault/internal/dbx"
	"github.com/dmitrijs2005/facevault/internal/server/models"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/repomanager"
)

// EmbeddingFields carries caller-supplied embedding attributes for Create
// and Update.
type EmbeddingFields struct {
	UserID int64
	Vector []float64
}

// EmbeddingService provides record operations over the embeddings
// repository. The vector is treated as an opaque payload throughout.
type EmbeddingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewEmbeddingService constructs an EmbeddingService on top of the given
// connection and repository manager.
func NewEmbeddingService(db *sql.DB, m repomanager.RepositoryManager) *EmbeddingService {
	return &EmbeddingService{db: db, repomanager: m}
}

// Create inserts a new embedding and returns it with the generated id.
// The referenced user is not checked for existence.
func (s *EmbeddingService) Create(ctx context.Context, f EmbeddingFields) (*models.Embedding, error) {
	emb := &models.Embedding{UserID: f.UserID, Vector: f.Vector}
	repo := s.repomanager.Embeddings(s.db)
	e, err := repo.Create(ctx, emb)
	if err != nil {
		return nil, fmt.Errorf("error creating embedding: %w", err)
	}
	return e, nil
}

// GetByID returns the embedding with the given id or common.ErrorNotFound.
func (s *EmbeddingService) GetByID(ctx context.Context, id int64) (*models.Embedding, error) {
	repo := s.repomanager.Embeddings(s.db)
	e, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting embedding: %w", err)
	}
	return e, nil
}

// List returns embeddings in insertion order. Negative bounds fall back to
// the defaults (skip 0, limit 100).
func (s *EmbeddingService) List(ctx context.Context, skip, limit int) ([]models.Embedding, error) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if limit < 0 {
		limit = DefaultLimit
	}
	repo := s.repomanager.Embeddings(s.db)
	result, err := repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing embeddings: %w", err)
	}
	return result, nil
}

// Update loads the embedding, merges the supplied fields and writes the
// record back. Same truthy-only rule as users: a zero user_id or an empty
// vector leaves the stored value unchanged.
func (s *EmbeddingService) Update(ctx context.Context, id int64, f EmbeddingFields) (*models.Embedding, error) {
	var updated *models.Embedding
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Embeddings(tx)

		e, err := repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error getting embedding: %w", err)
		}

		if f.UserID != 0 {
			e.UserID = f.UserID
		}
		if len(f.Vector) > 0 {
			e.Vector = f.Vector
		}

		if err := repo.Update(ctx, e); err != nil {
			return fmt.Errorf("error updating embedding: %w", err)
		}
		updated = e
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the embedding and returns the record as it existed
// immediately before deletion.
func (s *EmbeddingService) Delete(ctx context.Context, id int64) (*models.Embedding, error) {
	var deleted *models.Embedding
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Embeddings(tx)

		e, err := repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error getting embedding: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting embedding: %w", err)
		}
		deleted = e
		return nil
	}); err != nil {
		return nil, err
	}
	return deleted, nil
}
