package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/facevault/internal/common"
	"github.com/dmitrijs2005/facevault/internal/dbx"
	"github.com/dmitrijs2005/facevault/internal/server/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// isUniqueViolation reports whether err is a SQLite constraint failure
// (extended result codes share the SQLITE_CONSTRAINT primary code).
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

// Create inserts a new user, assigning the generated id and the creation
// timestamp. A duplicate email or phone yields common.ErrorConflict.
func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.DateAdded = time.Now().UTC()

	query :=
		`INSERT INTO users (name, email, phone, birthday, date_added)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Birthday, user.DateAdded).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByID returns the user with the given id or common.ErrorNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, name, email, phone, birthday, date_added FROM users
		 WHERE id = ?
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Birthday, &user.DateAdded)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// List returns users in insertion order, skipping the first skip rows and
// returning at most limit rows.
func (r *SQLiteRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	query :=
		`SELECT id, name, email, phone, birthday, date_added FROM users
		 ORDER BY id
		 LIMIT ? OFFSET ?
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.User{}
	for rows.Next() {
		var item models.User
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Phone, &item.Birthday, &item.DateAdded); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the stored row with the given record. It expects exactly
// one row to be affected; zero affected rows means the id does not exist.
func (r *SQLiteRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users SET name = ?, email = ?, phone = ?, birthday = ?
		 WHERE id = ?
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Birthday, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorConflict
		}
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

// Delete removes the row with the given id.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`

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
