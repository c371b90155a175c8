package api

import (
	"database/sql"
	"errors"
	"net/http"

	"notes-system/internal/domain/note"
	"notes-system/internal/domain/user"
	"notes-system/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, user.ErrMissingFields):
		return apperr.BadRequest("invalid_input", "all fields are required", err)
	case errors.Is(err, user.ErrInvalidData):
		return apperr.BadRequest("invalid_input", "invalid user data received", err)
	case errors.Is(err, user.ErrUsernameTaken):
		return apperr.Conflict("duplicate_username", "duplicate username", err)
	case errors.Is(err, user.ErrUserHasNotes):
		return apperr.Conflict("user_has_notes", "user has assigned notes", err)
	case errors.Is(err, user.ErrUserNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)
	case errors.Is(err, user.ErrNoUsers):
		return apperr.NotFound("no_users", "users not found", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, user.ErrInactiveUser):
		return apperr.Unauthorized("inactive_user", "user is inactive", err)
	case errors.Is(err, note.ErrMissingFields):
		return apperr.BadRequest("invalid_input", "all fields are required", err)
	case errors.Is(err, note.ErrTitleTaken):
		return apperr.Conflict("duplicate_title", "duplicate note title", err)
	case errors.Is(err, note.ErrNoteNotFound):
		return apperr.NotFound("note_not_found", "note not found", err)
	case errors.Is(err, note.ErrNoNotes):
		return apperr.NotFound("no_notes", "no notes found", err)
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
