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

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, emb *models.Embedding) (*models.Embedding, error) {
	blob, err := vectorx.Encode(emb.Vector)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vector: %w", err)
	}

	query :=
		`INSERT INTO embeddings (user_id, vector)
		 VALUES (?, ?)
		 RETURNING id
		 `

	if err := r.db.QueryRowContext(ctx, query, emb.UserID, blob).Scan(&emb.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return emb, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Embedding, error) {
	query :=
		`SELECT id, user_id, vector FROM embeddings
		 WHERE id = ?
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

func (r *SQLiteRepository) List(ctx context.Context, skip, limit int) ([]models.Embedding, error) {
	query :=
		`SELECT id, user_id, vector FROM embeddings
		 ORDER BY id
		 LIMIT ? OFFSET ?
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

func (r *SQLiteRepository) Update(ctx context.Context, emb *models.Embedding) error {
	blob, err := vectorx.Encode(emb.Vector)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}

	query :=
		`UPDATE embeddings SET user_id = ?, vector = ?
		 WHERE id = ?
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

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM embeddings WHERE id = ?`

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
