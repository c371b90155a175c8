package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"notes-system/internal/domain/note"
)

type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

func (r *NoteRepo) Create(ctx context.Context, n *note.Note) error {
	query := `
        INSERT INTO notes (user_id, title, body)
        VALUES ($1, $2, $3)
        RETURNING id, ticket, completed, created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Title, n.Text).
		Scan(&n.ID, &n.Ticket, &n.Completed, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return translateNoteError(err)
	}
	return nil
}

func (r *NoteRepo) GetByTitle(ctx context.Context, title string) (*note.Note, error) {
	query := `
        SELECT id, user_id, title, body, completed, ticket, created_at, updated_at
        FROM notes WHERE title = $1
    `
	return r.scanNote(r.db.QueryRowContext(ctx, query, title))
}

func (r *NoteRepo) GetByID(ctx context.Context, id int64) (*note.Note, error) {
	query := `
        SELECT id, user_id, title, body, completed, ticket, created_at, updated_at
        FROM notes WHERE id = $1
    `
	return r.scanNote(r.db.QueryRowContext(ctx, query, id))
}

func (r *NoteRepo) List(ctx context.Context) ([]note.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT n.id, n.user_id, COALESCE(u.username, ''), n.title, n.body,
               n.completed, n.ticket, n.created_at, n.updated_at
        FROM notes n
        LEFT JOIN users u ON u.id = n.user_id
        ORDER BY n.ticket
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notesList []note.Note
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Username, &n.Title, &n.Text,
			&n.Completed, &n.Ticket, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notesList = append(notesList, n)
	}
	return notesList, rows.Err()
}

func (r *NoteRepo) Update(ctx context.Context, n *note.Note) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE notes
        SET user_id = $1, title = $2, body = $3, completed = $4, updated_at = now()
        WHERE id = $5
    `, n.UserID, n.Title, n.Text, n.Completed, n.ID)
	if err != nil {
		return translateNoteError(err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

// ExistsByUser backs the application-level referential guard on user
// deletion; a single match is enough.
func (r *NoteRepo) ExistsByUser(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM notes WHERE user_id = $1 LIMIT 1`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *NoteRepo) scanNote(row *sql.Row) (*note.Note, error) {
	n := &note.Note{}
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Text, &n.Completed,
		&n.Ticket, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, note.ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

func translateNoteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return note.ErrTitleTaken
	}
	return err
}
