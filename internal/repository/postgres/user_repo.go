package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"notes-system/internal/domain/user"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	roles, err := json.Marshal(u.Roles)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO users (username, password_hash, roles, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err = r.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, roles, u.Active).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return translateUserError(err)
	}
	return nil
}

// GetByUsername relies on the collated username column, so equality is
// case- and accent-insensitive.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
        SELECT id, username, password_hash, roles, active, created_at
        FROM users WHERE username = $1
    `
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
        SELECT id, username, password_hash, roles, active, created_at
        FROM users WHERE id = $1
    `
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// List excludes password material at the query level.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, username, roles, active, created_at
        FROM users ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usersList []user.User
	for rows.Next() {
		var u user.User
		var roles []byte
		if err := rows.Scan(&u.ID, &u.Username, &roles, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(roles, &u.Roles); err != nil {
			return nil, err
		}
		usersList = append(usersList, u)
	}
	return usersList, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	roles, err := json.Marshal(u.Roles)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE users
        SET username = $1, password_hash = $2, roles = $3, active = $4
        WHERE id = $5
    `, u.Username, u.PasswordHash, roles, u.Active, u.ID)
	if err != nil {
		return translateUserError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanUser(row *sql.Row) (*user.User, error) {
	u := &user.User{}
	var roles []byte
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &roles, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(roles, &u.Roles); err != nil {
		return nil, err
	}
	return u, nil
}

// translateUserError maps store-level constraint failures onto domain
// errors: the unique index on the collated username column is the
// backstop for the service's check-then-write sequence.
func translateUserError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return user.ErrUsernameTaken
		}
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
			return user.ErrInvalidData
		}
	}
	return err
}
