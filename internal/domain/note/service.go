package note

import (
	"context"
	"errors"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrTitleTaken    = errors.New("duplicate note title")
	ErrNoteNotFound  = errors.New("note not found")
	ErrNoNotes       = errors.New("no notes found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}
	return notes, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Note, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, userID int64, title, text string) (*Note, error) {
	if userID == 0 || title == "" || text == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetByTitle(ctx, title)
	if err != nil && !errors.Is(err, ErrNoteNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTitleTaken
	}

	n := &Note{
		UserID: userID,
		Title:  title,
		Text:   text,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, title, text string, completed bool) (*Note, error) {
	if id == 0 || userID == 0 || title == "" || text == "" {
		return nil, ErrMissingFields
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dup, err := s.repo.GetByTitle(ctx, title)
	if err != nil && !errors.Is(err, ErrNoteNotFound) {
		return nil, err
	}
	if dup != nil && dup.ID != id {
		return nil, ErrTitleTaken
	}

	n.UserID = userID
	n.Title = title
	n.Text = text
	n.Completed = completed

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Delete removes the note and returns the deleted record so handlers
// can name its title and ticket number in the confirmation.
func (s *Service) Delete(ctx context.Context, id int64) (*Note, error) {
	if id == 0 {
		return nil, ErrMissingFields
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, n.ID); err != nil {
		return nil, err
	}

	return n, nil
}
