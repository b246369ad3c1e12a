package notifications

import (
	"time"

	"uploadnotify/internal/upload"
)

// Status names a task status with its own presentation.
type Status string

const (
	StatusProgress  Status = "progress"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusProgress, StatusCompleted, StatusError, StatusCancelled}

// Action is an extra button bound to a notification.
type Action struct {
	Icon   string `json:"icon,omitempty"`
	Title  string `json:"title"`
	Target string `json:"target"`
}

// StatusConfig is the presentation of one task status. A nil Message
// suppresses the status entirely.
type StatusConfig struct {
	Title         string   `json:"title"`
	Message       *string  `json:"message,omitempty"`
	IconResource  string   `json:"icon,omitempty"`
	IconColor     string   `json:"icon_color,omitempty"`
	LargeIcon     string   `json:"large_icon,omitempty"`
	ClickAction   string   `json:"click_action,omitempty"`
	Actions       []Action `json:"actions,omitempty"`
	AutoClear     bool     `json:"auto_clear"`
	ClearOnAction bool     `json:"clear_on_action"`
}

// Shown reports whether the status produces a notification at all.
func (s StatusConfig) Shown() bool {
	return s.Message != nil
}

// Config is the per-task notification configuration supplied by the host.
type Config struct {
	ChannelID       string       `json:"channel_id"`
	RingToneEnabled bool         `json:"ring_tone_enabled"`
	Progress        StatusConfig `json:"progress"`
	Completed       StatusConfig `json:"completed"`
	Error           StatusConfig `json:"error"`
	Cancelled       StatusConfig `json:"cancelled"`
}

// StatusConfig returns the presentation configured for status.
func (c *Config) StatusConfig(status Status) (StatusConfig, bool) {
	if c == nil {
		return StatusConfig{}, false
	}
	switch status {
	case StatusProgress:
		return c.Progress, true
	case StatusCompleted:
		return c.Completed, true
	case StatusError:
		return c.Error, true
	case StatusCancelled:
		return c.Cancelled, true
	default:
		return StatusConfig{}, false
	}
}

// Progress describes the progress bar of a notification. The zero value means
// no bar.
type Progress struct {
	Max           int  `json:"max"`
	Current       int  `json:"current"`
	Indeterminate bool `json:"indeterminate"`
}

// Notification is a fully built notification handed to a Delivery.
type Notification struct {
	Status      Status    `json:"status"`
	ChannelID   string    `json:"channel_id"`
	Group       string    `json:"group"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	ClickAction string    `json:"click_action,omitempty"`
	SmallIcon   string    `json:"small_icon,omitempty"`
	LargeIcon   string    `json:"large_icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	Actions     []Action  `json:"actions,omitempty"`
	When        time.Time `json:"when,omitzero"`
	Ongoing     bool      `json:"ongoing"`
	AutoCancel  bool      `json:"auto_cancel"`
	Progress    Progress  `json:"progress"`
	Sound       string    `json:"sound,omitempty"`
}

// Capabilities captures platform-dependent behaviour, resolved once at startup.
type Capabilities struct {
	// SupportsNotificationChannels enables the channel existence check.
	SupportsNotificationChannels bool
	// OwnsSoundViaChannel means the channel decides the sound and the handler
	// must never attach one.
	OwnsSoundViaChannel bool
}

// Delivery shows and removes notifications addressed by numeric identity.
type Delivery interface {
	Notify(id int, n Notification)
	Cancel(id int)
}

// ChannelRegistry answers whether a notification channel has been created.
type ChannelRegistry interface {
	ChannelExists(id string) bool
}

// ForegroundHolder lets the host take over presentation of a task's
// notification. A true result means the host owns it.
type ForegroundHolder interface {
	HoldForeground(taskID string, n Notification) bool
}

// Substituter expands placeholders in a template for the given task.
type Substituter interface {
	Substitute(template string, info upload.Info) string
}

// SoundResolver returns the platform's current default notification sound.
type SoundResolver interface {
	DefaultNotificationSound() string
}

// StaticSound is a SoundResolver that always returns the same sound.
type StaticSound string

func (s StaticSound) DefaultNotificationSound() string { return string(s) }

// TerminalID returns the identity of the terminal notification paired with the
// ongoing identity id.
func TerminalID(id int) int {
	return id + 1
}

// Text returns a pointer to s, for building StatusConfig.Message literals.
func Text(s string) *string {
	return &s
}
