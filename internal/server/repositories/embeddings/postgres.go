package embeddings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/facevault/internal/common"
	"github.com/dmitrijs2005/facevault/internal/dbx"
	"github.com/dmitrijs2005/facevault/internal/server/models"
	"github.com/dmitrijs2005/facevault/internal/vectorx"
)

// PostgresRepository implements Repository against PostgreSQL. The vector
// column is bytea and carries the same blob layout as the SQLite backend.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, emb *models.Embedding) (*models.Embedding, error) {
	blob, err := vectorx.Encode(emb.Vector)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vector: %w", err)
	}

	query :=
		`INSERT INTO embeddings (user_id, vector)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	if err := r.db.QueryRowContext(ctx, query, emb.UserID, blob).Scan(&emb.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return emb, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Embedding, error) {
	query :=
		`SELECT id, user_id, vector FROM embeddings
		 WHERE id = $1
		 `

	emb := &models.Embedding{}
	var blob []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&emb.ID, &emb.UserID, &blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if emb.Vector, err = vectorx.Decode(blob); err != nil {
		return nil, fmt.Errorf("failed to decode vector: %w", err)
	}
	return emb, nil
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]models.Embedding, error) {
	query :=
		`SELECT id, user_id, vector FROM embeddings
		 ORDER BY id
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Embedding{}
	for rows.Next() {
		var item models.Embedding
		var blob []byte
		if err := rows.Scan(&item.ID, &item.UserID, &blob); err != nil {
			return nil, err
		}
		if item.Vector, err = vectorx.Decode(blob); err != nil {
			return nil, fmt.Errorf("failed to decode vector: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, emb *models.Embedding) error {
	blob, err := vectorx.Encode(emb.Vector)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}

	query :=
		`UPDATE embeddings SET user_id = $1, vector = $2
		 WHERE id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, emb.UserID, blob, emb.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM embeddings WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
