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

	"notes-system/internal/domain/note"
)

func newNoteRepoWithMock(t *testing.T) (*NoteRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewNoteRepo(db), mock, db
}

func TestNoteRepoCreate(t *testing.T) {
	repo, mock, db := newNoteRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+notes\s*\(user_id,\s*title,\s*body\)`).
		WithArgs(int64(1), "Fix printer", "jammed again").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket", "completed", "created_at", "updated_at"}).
			AddRow(int64(10), int64(501), false, now, now))

	n := &note.Note{UserID: 1, Title: "Fix printer", Text: "jammed again"}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, int64(10), n.ID)
	assert.Equal(t, int64(501), n.Ticket)
}

func TestNoteRepoCreateDuplicateTitle(t *testing.T) {
	repo, mock, db := newNoteRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+notes`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &note.Note{UserID: 1, Title: "dup", Text: "x"})
	assert.ErrorIs(t, err, note.ErrTitleTaken)
}

func TestNoteRepoGetByTitleNotFound(t *testing.T) {
	repo, mock, db := newNoteRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByTitle(context.Background(), "missing")
	assert.ErrorIs(t, err, note.ErrNoteNotFound)
}

func TestNoteRepoExistsByUser(t *testing.T) {
	repo, mock, db := newNoteRepoWithMock(t)
	defer db.Close()

	q := `SELECT\s+1\s+FROM\s+notes\s+WHERE\s+user_id\s*=\s*\$1\s+LIMIT\s+1`

	mock.ExpectQuery(q).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(q).WithArgs(int64(2)).WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNoteRepoList(t *testing.T) {
	repo, mock, db := newNoteRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "username", "title", "body", "completed", "ticket", "created_at", "updated_at"}).
		AddRow(int64(1), int64(2), "alice", "First", "text", false, int64(500), now, now)
	mock.ExpectQuery(`(?s)SELECT\s+n\.id,.*FROM\s+notes\s+n\s+LEFT\s+JOIN\s+users\s+u`).
		WillReturnRows(rows)

	notes, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "alice", notes[0].Username)
}

func TestNoteRepoDelete(t *testing.T) {
	repo, mock, db := newNoteRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 4))

	mock.ExpectExec(`DELETE\s+FROM\s+notes`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 4), note.ErrNoteNotFound)
}
