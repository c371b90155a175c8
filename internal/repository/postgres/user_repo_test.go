package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-system/internal/domain/user"
)

func newUserRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepo(db), mock, db
}

func TestUserRepoCreate(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+users\s*\(username,\s*password_hash,\s*roles,\s*active\)`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("alice", "hashed", []byte(`["Employee"]`), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	u := &user.User{Username: "alice", PasswordHash: "hashed", Roles: []string{"Employee"}, Active: true}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, now, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateUniqueViolation(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	u := &user.User{Username: "alice", PasswordHash: "hashed", Roles: []string{"Employee"}, Active: true}
	err := repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestUserRepoCreateCheckViolation(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23514"})

	u := &user.User{Username: "alice", PasswordHash: "hashed", Roles: []string{"Employee"}, Active: true}
	err := repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, user.ErrInvalidData)
}

func TestUserRepoGetByUsername(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*username,\s*password_hash,\s*roles,\s*active,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "roles", "active", "created_at"}).
		AddRow(int64(1), "Alice", "hashed", []byte(`["Manager"]`), true, now)
	mock.ExpectQuery(q).WithArgs("alice").WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)
	assert.Equal(t, []string{"Manager"}, u.Roles)
}

func TestUserRepoGetByUsernameNotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepoList(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "roles", "active", "created_at"}).
		AddRow(int64(1), "alice", []byte(`["Employee"]`), true, now).
		AddRow(int64(2), "bob", []byte(`["Manager","Admin"]`), false, now)
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*username,\s*roles,\s*active,\s*created_at\s+FROM\s+users`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Empty(t, users[0].PasswordHash)
	assert.Equal(t, []string{"Manager", "Admin"}, users[1].Roles)
}

func TestUserRepoUpdate(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+users\s+SET\s+username\s*=\s*\$1,\s*password_hash\s*=\s*\$2,\s*roles\s*=\s*\$3,\s*active\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$5`

	mock.ExpectExec(q).
		WithArgs("alice", "hashed", []byte(`["Employee"]`), false, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &user.User{ID: 3, Username: "alice", PasswordHash: "hashed", Roles: []string{"Employee"}, Active: false}
	require.NoError(t, repo.Update(context.Background(), u))
}

func TestUserRepoUpdateNotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	u := &user.User{ID: 99, Username: "ghost", Roles: []string{"Employee"}}
	err := repo.Update(context.Background(), u)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepoDeleteScopedToID(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoDeleteNotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+users`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
