package note

import (
	"context"
	"time"
)

type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Ticket    int64     `json:"ticket"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, n *Note) error
	// GetByTitle matches case-insensitively (secondary-strength collation).
	GetByTitle(ctx context.Context, title string) (*Note, error)
	GetByID(ctx context.Context, id int64) (*Note, error)
	// List returns all notes with the owning username resolved.
	List(ctx context.Context) ([]Note, error)
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id int64) error
	ExistsByUser(ctx context.Context, userID int64) (bool, error)
}
