package worker

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// UserEvent describes a completed user lifecycle mutation.
type UserEvent struct {
	Action   string
	UserID   int64
	Username string
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AuditWorker drains lifecycle events off a channel and writes them to
// the audit log. Senders must never block on it.
type AuditWorker struct {
	Ch     <-chan UserEvent
	logger *slog.Logger
}

func NewAuditWorker(ch <-chan UserEvent, logger *slog.Logger) *AuditWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditWorker{Ch: ch, logger: logger}
}

func (w *AuditWorker) Run(ctx context.Context) {
	w.logger.Info("audit worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("audit worker stopped")
			return
		case ev := <-w.Ch:
			w.logger.Info("user lifecycle event",
				"event_id", uuid.NewString(),
				"action", ev.Action,
				"user_id", ev.UserID,
				"username", ev.Username,
			)
		}
	}
}
