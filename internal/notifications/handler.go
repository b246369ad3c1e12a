package notifications

import (
	"log/slog"
	"sync"
	"time"

	"uploadnotify/internal/logging"
	"uploadnotify/internal/upload"
)

// Dependencies are the collaborators a Handler talks to.
type Dependencies struct {
	Delivery     Delivery
	Channels     ChannelRegistry
	Host         ForegroundHolder
	Placeholders Substituter
	Sounds       SoundResolver
	Capabilities Capabilities
	// Namespace is used as the group tag of every notification.
	Namespace string
}

// Option customizes a Handler.
type Option func(*Handler)

// WithLogger routes suppression diagnostics to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logging.NewComponentLogger(logger, "notification-handler")
	}
}

// WithClock overrides the clock used for the creation timestamp.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// Handler turns task lifecycle callbacks into notifications. One Handler
// serves every task of a process; callbacks for a single task must be
// serialized by the caller, distinct tasks may call concurrently.
type Handler struct {
	deps   Dependencies
	logger *slog.Logger
	now    func() time.Time

	createdOnce sync.Once
	createdAt   time.Time
}

// New constructs a Handler.
func New(deps Dependencies, opts ...Option) *Handler {
	h := &Handler{
		deps:   deps,
		logger: logging.NewComponentLogger(nil, "notification-handler"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreatedAt returns the timestamp stamped on every ongoing notification,
// capturing it on first use.
func (h *Handler) CreatedAt() time.Time {
	h.createdOnce.Do(func() {
		h.createdAt = h.now()
	})
	return h.createdAt
}

// OnInitialize validates the channel and shows an indeterminate ongoing
// notification at id.
func (h *Handler) OnInitialize(info upload.Info, id int, cfg *Config) error {
	if cfg == nil {
		h.skipped(info, id, "initialize", "notifications disabled")
		return nil
	}
	if h.deps.Capabilities.SupportsNotificationChannels && !h.channelExists(cfg.ChannelID) {
		return &ChannelNotFoundError{ChannelID: cfg.ChannelID}
	}
	n, ok := h.ongoing(cfg.ChannelID, info, cfg.Progress)
	if !ok {
		h.skipped(info, id, "initialize", "progress message not set")
		return nil
	}
	n.Progress = Progress{Max: 100, Current: 0, Indeterminate: true}
	h.dispatch(info.ID, id, n)
	return nil
}

// OnProgress replaces the ongoing notification at id with the current
// progress.
func (h *Handler) OnProgress(info upload.Info, id int, cfg *Config) {
	if cfg == nil {
		return
	}
	n, ok := h.ongoing(cfg.ChannelID, info, cfg.Progress)
	if !ok {
		return
	}
	n.Progress = Progress{Max: 100, Current: info.ProgressPercent()}
	h.dispatch(info.ID, id, n)
}

// OnSuccess removes the ongoing notification and shows the completed status
// at TerminalID(id).
func (h *Handler) OnSuccess(info upload.Info, id int, cfg *Config, _ upload.ServerResponse) {
	if cfg == nil {
		h.skipped(info, id, "success", "notifications disabled")
		return
	}
	h.terminal(info, id, cfg, cfg.Completed, StatusCompleted)
}

// OnError removes the ongoing notification and shows the cancelled status when
// cause is a user cancellation, the error status otherwise.
func (h *Handler) OnError(info upload.Info, id int, cfg *Config, cause error) {
	if cfg == nil {
		h.skipped(info, id, "error", "notifications disabled")
		return
	}
	if upload.IsUserCancelled(cause) {
		h.terminal(info, id, cfg, cfg.Cancelled, StatusCancelled)
		return
	}
	h.terminal(info, id, cfg, cfg.Error, StatusError)
}

// OnCompleted is a no-op: completion carries no presentation.
func (h *Handler) OnCompleted(upload.Info, int, *Config) {}

func (h *Handler) channelExists(channelID string) bool {
	if h.deps.Channels == nil {
		return false
	}
	return h.deps.Channels.ChannelExists(channelID)
}

func (h *Handler) ongoing(channelID string, info upload.Info, status StatusConfig) (Notification, bool) {
	if !status.Shown() {
		return Notification{}, false
	}
	n := Notification{Status: StatusProgress, ChannelID: channelID, When: h.CreatedAt()}
	n = applyCommonFields(n, status, info, h.deps.Namespace, h.deps.Placeholders)
	n.Ongoing = true
	return n, true
}

// dispatch offers n to the host first; a held notification is cancelled
// instead of shown.
func (h *Handler) dispatch(taskID string, id int, n Notification) {
	if h.deps.Host != nil && h.deps.Host.HoldForeground(taskID, n) {
		h.logger.Debug("notification held for foreground",
			logging.String(logging.FieldTaskID, taskID),
			logging.Int(logging.FieldNotificationID, id),
		)
		h.cancel(id)
		return
	}
	if h.deps.Delivery != nil {
		h.deps.Delivery.Notify(id, n)
	}
}

// terminal always cancels the ongoing identity, then shows the final status at
// TerminalID(id) unless the status is suppressed or auto-cleared.
func (h *Handler) terminal(info upload.Info, id int, cfg *Config, status StatusConfig, kind Status) {
	h.cancel(id)

	if !status.Shown() {
		h.skipped(info, id, string(kind), "message not set")
		return
	}
	if status.AutoClear {
		h.skipped(info, id, string(kind), "auto clear")
		return
	}

	n := Notification{Status: kind, ChannelID: cfg.ChannelID}
	n = applyCommonFields(n, status, info, h.deps.Namespace, h.deps.Placeholders)
	n.Progress = Progress{}
	n.Ongoing = false
	n.AutoCancel = status.ClearOnAction
	n = withRingtone(n, cfg.RingToneEnabled, h.deps.Capabilities, h.deps.Sounds)

	// The ongoing notification cannot be dismissed, so the final one needs
	// its own slot.
	if h.deps.Delivery != nil {
		h.deps.Delivery.Notify(TerminalID(id), n)
	}
}

func (h *Handler) cancel(id int) {
	if h.deps.Delivery != nil {
		h.deps.Delivery.Cancel(id)
	}
}

func (h *Handler) skipped(info upload.Info, id int, event, reason string) {
	h.logger.Debug("notification suppressed",
		logging.String(logging.FieldTaskID, info.ID),
		logging.Int(logging.FieldNotificationID, id),
		logging.String(logging.FieldEventType, event),
		logging.String("reason", reason),
	)
}

// applyCommonFields decorates n with everything shared by ongoing and terminal
// notifications.
func applyCommonFields(n Notification, status StatusConfig, info upload.Info, namespace string, sub Substituter) Notification {
	n.Group = namespace
	n.Title = substitute(sub, status.Title, info)
	message := ""
	if status.Message != nil {
		message = *status.Message
	}
	n.Text = substitute(sub, message, info)
	n.ClickAction = status.ClickAction
	n.SmallIcon = status.IconResource
	n.LargeIcon = status.LargeIcon
	n.Color = status.IconColor
	if len(status.Actions) > 0 {
		actions := make([]Action, 0, len(n.Actions)+len(status.Actions))
		actions = append(actions, n.Actions...)
		n.Actions = append(actions, status.Actions...)
	}
	return n
}

// withRingtone attaches the default sound when requested and the channel does
// not govern sound itself.
func withRingtone(n Notification, enabled bool, caps Capabilities, sounds SoundResolver) Notification {
	if !enabled || caps.OwnsSoundViaChannel || sounds == nil {
		return n
	}
	n.Sound = sounds.DefaultNotificationSound()
	return n
}

func substitute(sub Substituter, template string, info upload.Info) string {
	if sub == nil {
		return template
	}
	return sub.Substitute(template, info)
}
