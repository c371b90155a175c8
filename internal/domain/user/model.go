package user

import (
	"context"
	"time"
)

const DefaultRole = "Employee"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	// GetByUsername matches case-insensitively (secondary-strength collation).
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

// NoteChecker reports whether any note still references a user.
type NoteChecker interface {
	ExistsByUser(ctx context.Context, userID int64) (bool, error)
}
