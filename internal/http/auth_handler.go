package api

import (
	"net/http"

	"notes-system/internal/metrics"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      loginRequest  true  "Credentials"
// @Success     200      {object}  map[string]string
// @Failure     400      {object}  map[string]string  "missing fields"
// @Failure     401      {object}  map[string]string  "bad credentials or inactive"
// @Failure     429      {object}  map[string]string  "too many attempts"
// @Router      /api/v1/auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.IncLogin("failure")
		errorResponse(w, err)
		return
	}

	token, err := h.jwtMgr.Generate(u.ID, u.Username, u.Roles, h.jwtTTL)
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncLogin("success")
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
