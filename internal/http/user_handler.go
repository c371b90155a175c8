package api

import (
	"fmt"
	"net/http"

	"notes-system/internal/worker"
)

type createUserRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles" validate:"omitempty,min=1,dive,required"`
}

type updateUserRequest struct {
	ID       int64    `json:"id" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,required"`
	Active   *bool    `json:"active" validate:"required"`
}

type deleteUserRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// @Summary     List users
// @Tags        users
// @Security    BearerAuth
// @Produce     json
// @Success     200  {array}   user.User
// @Failure     404  {object}  map[string]string  "no users"
// @Failure     500  {object}  map[string]string  "server error"
// @Router      /api/v1/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// @Summary     Create user
// @Tags        users
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createUserRequest  true  "New user"
// @Success     201      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "missing fields"
// @Failure     409      {object}  map[string]string  "duplicate username"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Create(r.Context(), req.Username, req.Password, req.Roles)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.emitAudit(worker.ActionCreated, u)

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("New user %s created", u.Username),
	})
}

// @Summary     Update user
// @Tags        users
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      updateUserRequest  true  "Updated user; password optional"
// @Success     200      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "missing fields"
// @Failure     404      {object}  map[string]string  "user not found"
// @Failure     409      {object}  map[string]string  "username taken by another user"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/users [patch]
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Update(r.Context(), req.ID, req.Username, req.Password, req.Roles, *req.Active)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.emitAudit(worker.ActionUpdated, u)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("User %s updated", u.Username),
	})
}

// @Summary     Delete user
// @Tags        users
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      deleteUserRequest  true  "User id"
// @Success     200      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "missing id"
// @Failure     404      {object}  map[string]string  "user not found"
// @Failure     409      {object}  map[string]string  "user has assigned notes"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /api/v1/users [delete]
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Delete(r.Context(), req.ID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.emitAudit(worker.ActionDeleted, u)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("User %s deleted", u.Username),
	})
}
