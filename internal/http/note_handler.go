package api

import (
	"fmt"
	"net/http"

	"notes-system/internal/platform/apperr"
)

type createNoteRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

type updateNoteRequest struct {
	ID        int64  `json:"id" validate:"required"`
	UserID    int64  `json:"user_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type deleteNoteRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// @Summary     List notes
// @Tags        notes
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   note.Note
// @Failure     404  {object}  map[string]string  "no notes"
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/notes [get]
func (h *Handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// @Summary     Get note
// @Tags        notes
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      int64  true  "Note ID"
// @Success     200  {object}  note.Note
// @Failure     400  {object}  map[string]string  "invalid id"
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/v1/notes/{id} [get]
func (h *Handler) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid id", err))
		return
	}

	n, err := h.noteSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// @Summary     Create note
// @Tags        notes
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createNoteRequest  true  "New note"
// @Success     201      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "missing fields"
// @Failure     409      {object}  map[string]string  "duplicate title"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/notes [post]
func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	n, err := h.noteSvc.Create(r.Context(), req.UserID, req.Title, req.Text)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("New note %q created with ticket %d", n.Title, n.Ticket),
	})
}

// @Summary     Update note
// @Tags        notes
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      updateNoteRequest  true  "Updated note"
// @Success     200      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "missing fields"
// @Failure     404      {object}  map[string]string  "note not found"
// @Failure     409      {object}  map[string]string  "title taken by another note"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/notes [patch]
func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	n, err := h.noteSvc.Update(r.Context(), req.ID, req.UserID, req.Title, req.Text, *req.Completed)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Note %q updated", n.Title),
	})
}

// @Summary     Delete note
// @Tags        notes
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      deleteNoteRequest  true  "Note id"
// @Success     200      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "missing id"
// @Failure     404      {object}  map[string]string  "note not found"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/notes [delete]
func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	var req deleteNoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	n, err := h.noteSvc.Delete(r.Context(), req.ID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Note %q with ticket %d deleted", n.Title, n.Ticket),
	})
}
