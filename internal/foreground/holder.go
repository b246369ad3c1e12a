package foreground

import (
	"log/slog"
	"sync"

	"uploadnotify/internal/logging"
	"uploadnotify/internal/notifications"
)

// Holder implements notifications.ForegroundHolder.
type Holder struct {
	enabled bool
	logger  *slog.Logger

	mu     sync.Mutex
	taskID string
	latest notifications.Notification
	held   bool
}

// New returns a holder. A disabled holder never holds anything.
func New(enabled bool, logger *slog.Logger) *Holder {
	return &Holder{
		enabled: enabled,
		logger:  logging.NewComponentLogger(logger, "foreground"),
	}
}

// HoldForeground claims the foreground for taskID when it is free and holds n
// when taskID owns it.
func (h *Holder) HoldForeground(taskID string, n notifications.Notification) bool {
	if h == nil || !h.enabled {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.taskID == "" {
		h.taskID = taskID
		h.logger.Debug("foreground claimed", logging.String(logging.FieldTaskID, taskID))
	}
	if h.taskID != taskID {
		return false
	}
	h.latest = n
	h.held = true
	return true
}

// Release frees the foreground when taskID owns it. The next task to ask takes
// over.
func (h *Holder) Release(taskID string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.taskID == "" || h.taskID != taskID {
		return
	}
	h.taskID = ""
	h.latest = notifications.Notification{}
	h.held = false
	h.logger.Debug("foreground released", logging.String(logging.FieldTaskID, taskID))
}

// Current returns the foreground task and the notification it last held.
func (h *Holder) Current() (string, notifications.Notification, bool) {
	if h == nil {
		return "", notifications.Notification{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.taskID, h.latest, h.held
}
