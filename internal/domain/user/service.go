package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("duplicate username")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoUsers            = errors.New("users not found")
	ErrUserHasNotes       = errors.New("user has assigned notes")
	ErrInvalidData        = errors.New("invalid user data received")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
)

// bcrypt work factor for stored credentials.
const bcryptCost = 10

type Service struct {
	repo  Repository
	notes NoteChecker
}

func NewService(repo Repository, notes NoteChecker) *Service {
	return &Service{repo: repo, notes: notes}
}

// List returns every user without password material. An empty store is
// reported as ErrNoUsers rather than an empty list.
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

func (s *Service) Create(ctx context.Context, username, password string, roles []string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		roles = []string{DefaultRole}
	}

	u := &User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
		Active:       true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, username, password string, roles []string, active bool) (*User, error) {
	if id == 0 || username == "" || len(roles) == 0 {
		return nil, ErrMissingFields
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A case-insensitive match on the record being updated is the
	// permitted self-match; only a different user's username blocks.
	dup, err := s.repo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if dup != nil && dup.ID != id {
		return nil, ErrUsernameTaken
	}

	u.Username = username
	u.Roles = roles
	u.Active = active

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Delete removes the user identified by id. It refuses while any note
// still references the user, and returns the deleted record so callers
// can name the username in the confirmation.
func (s *Service) Delete(ctx context.Context, id int64) (*User, error) {
	if id == 0 {
		return nil, ErrMissingFields
	}

	hasNotes, err := s.notes.ExistsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasNotes {
		return nil, ErrUserHasNotes
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, u.ID); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.Active {
		return nil, ErrInactiveUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
