package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"notes-system/internal/domain/note"
	"notes-system/internal/domain/user"
	jwtpkg "notes-system/internal/platform/jwt"
	"notes-system/internal/worker"
)

// Login attempts allowed per client IP.
const (
	loginWindow = 15 * time.Minute
	loginLimit  = 5
)

type Handler struct {
	userSvc *user.Service
	noteSvc *note.Service
	jwtMgr  *jwtpkg.Manager
	jwtTTL  time.Duration
	auditCh chan<- worker.UserEvent
	db      *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	noteSvc *note.Service,
	jwtMgr *jwtpkg.Manager,
	jwtTTL time.Duration,
	auditCh chan<- worker.UserEvent,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc: userSvc,
		noteSvc: noteSvc,
		jwtMgr:  jwtMgr,
		jwtTTL:  jwtTTL,
		auditCh: auditCh,
		db:      db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(RateLimitLogin(rate.Every(loginWindow/loginLimit), loginLimit)).
			Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtMgr))

			r.Get("/notes", h.handleListNotes)
			r.Get("/notes/{id}", h.handleGetNote)
			r.Post("/notes", h.handleCreateNote)
			r.Patch("/notes", h.handleUpdateNote)
			r.Delete("/notes", h.handleDeleteNote)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole("Manager", "Admin"))
				r.Get("/users", h.handleListUsers)
				r.Post("/users", h.handleCreateUser)
				r.Patch("/users", h.handleUpdateUser)
				r.Delete("/users", h.handleDeleteUser)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

func (h *Handler) emitAudit(action string, u *user.User) {
	if h.auditCh == nil {
		return
	}
	select {
	case h.auditCh <- worker.UserEvent{Action: action, UserID: u.ID, Username: u.Username}:
	default:
	}
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
