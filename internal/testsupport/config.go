package testsupport

import (
	"path/filepath"
	"testing"

	"uploadnotify/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp log directory and the
// default upload channel. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Channels = []config.Channel{{
		ID:         cfgVal.Notifications.ChannelID,
		Name:       "Uploads",
		Importance: "low",
	}}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return builder.cfg
}

// WithNtfyTopic points the ntfy mirror at topic.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
		b.cfg.Notifications.RequestTimeout = 5
	}
}

// WithLegacyPlatform disables notification channels, which also moves sound
// selection back to the handler.
func WithLegacyPlatform() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Platform.SupportsNotificationChannels = false
		b.cfg.Platform.OwnsSoundViaChannel = false
	}
}

// WithRingTone toggles the ring tone on terminal notifications.
func WithRingTone(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.RingToneEnabled = enabled
	}
}

// WithChannelID makes tasks target channelID without registering it.
func WithChannelID(channelID string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.ChannelID = channelID
	}
}

// WithoutForeground disables hold-for-foreground.
func WithoutForeground() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Platform.ExecuteInForeground = false
	}
}

// WithNotificationsDisabled turns every handler callback into a no-op.
func WithNotificationsDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.Disabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
