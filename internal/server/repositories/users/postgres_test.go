package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/facevault/internal/common"
	"github.com/dmitrijs2005/facevault/internal/server/models"
	"github.com/lib/pq"
)

func newPgRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPgCreate_Success(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*email,\s*phone,\s*birthday,\s*date_added\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(1)
	mock.ExpectQuery(q).
		WithArgs("Test User", "test@example.com", "123", "2000-01-01", sqlmock.AnyArg()).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &models.User{
		Name: "Test User", Email: "test@example.com", Phone: "123", Birthday: "2000-01-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
}

func TestPgCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("Test User", "dup@example.com", "123", "2000-01-01", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{
		Name: "Test User", Email: "dup@example.com", Phone: "123", Birthday: "2000-01-01",
	})
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("expected ErrorConflict, got %v", err)
	}
}

func TestPgUpdate_UniqueViolation(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users`).
		WithArgs("A", "dup@example.com", "1", "2000-01-01", int64(7)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Update(context.Background(), &models.User{
		ID: 7, Name: "A", Email: "dup@example.com", Phone: "1", Birthday: "2000-01-01",
	})
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("expected ErrorConflict, got %v", err)
	}
}

func TestPgGetByID_NotFound(t *testing.T) {
	repo, mock, db := newPgRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,`).
		WithArgs(int64(12)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 12)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
