package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"uploadnotify/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "uploadnotify", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if len(cfg.Channels) != 1 || cfg.Channels[0].ID != "uploads" {
		t.Fatalf("expected default uploads channel, got %+v", cfg.Channels)
	}
	if cfg.Notifications.ChannelID != "uploads" {
		t.Fatalf("unexpected channel id %q", cfg.Notifications.ChannelID)
	}
	if cfg.Notifications.BaseNotificationID != 1234 {
		t.Fatalf("unexpected base notification id %d", cfg.Notifications.BaseNotificationID)
	}
	if !cfg.Platform.SupportsNotificationChannels || !cfg.Platform.OwnsSoundViaChannel {
		t.Fatalf("expected channel-era platform defaults, got %+v", cfg.Platform)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigOverridesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(tempHome, "config.toml")
	content := `
[logging]
format = " JSON "
level = "DEBUG"

[platform]
supports_notification_channels = false
owns_sound_via_channel = false
default_sound = "  chime.ogg "

[[channels]]
id = "transfers"
importance = "HIGH"

[[channels]]
id = "misc"

[notifications]
channel_id = " transfers "
ring_tone_enabled = true
base_notification_id = 40

[notifications.completed]
message = "Done {filename}"
auto_clear = true

[notifications.error]
hidden = true

[[notifications.cancelled.actions]]
title = " Undo "
target = "app://undo"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %s, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if cfg.Platform.DefaultSound != "chime.ogg" {
		t.Fatalf("expected trimmed sound, got %q", cfg.Platform.DefaultSound)
	}
	if len(cfg.Channels) != 2 {
		t.Fatalf("expected only file channels, got %+v", cfg.Channels)
	}
	if ch, ok := cfg.Channel("transfers"); !ok || ch.Importance != "high" || ch.Name != "transfers" {
		t.Fatalf("unexpected transfers channel %+v ok=%v", ch, ok)
	}
	if ch, _ := cfg.Channel("misc"); ch.Importance != "default" {
		t.Fatalf("expected default importance, got %q", ch.Importance)
	}
	if cfg.Notifications.ChannelID != "transfers" {
		t.Fatalf("expected trimmed channel id, got %q", cfg.Notifications.ChannelID)
	}
	if cfg.Notifications.Completed.Message != "Done {filename}" || !cfg.Notifications.Completed.AutoClear {
		t.Fatalf("unexpected completed status %+v", cfg.Notifications.Completed)
	}
	if cfg.Notifications.Completed.Icon != "ic_upload_done" {
		t.Fatalf("expected default icon to survive partial override, got %q", cfg.Notifications.Completed.Icon)
	}
	if !cfg.Notifications.Error.Hidden {
		t.Fatal("expected error status hidden")
	}
	actions := cfg.Notifications.Cancelled.Actions
	if len(actions) != 1 || actions[0].Title != "Undo" {
		t.Fatalf("unexpected cancelled actions %+v", actions)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
		{
			name:   "negative retention",
			mutate: func(c *config.Config) { c.Logging.RetentionDays = -1 },
			want:   "logging.retention_days",
		},
		{
			name:   "duplicate channel",
			mutate: func(c *config.Config) { c.Channels = append(c.Channels, c.Channels[0]) },
			want:   "registered twice",
		},
		{
			name:   "missing channel id",
			mutate: func(c *config.Config) { c.Notifications.ChannelID = "" },
			want:   "notifications.channel_id",
		},
		{
			name:   "negative base id",
			mutate: func(c *config.Config) { c.Notifications.BaseNotificationID = -1 },
			want:   "base_notification_id",
		},
		{
			name:   "ntfy topic not url",
			mutate: func(c *config.Config) { c.Notifications.NtfyTopic = "my-topic" },
			want:   "ntfy_topic",
		},
		{
			name:   "negative ntfy burst",
			mutate: func(c *config.Config) { c.Notifications.NtfyBurst = -2 },
			want:   "notifications.ntfy_burst",
		},
		{
			name: "action without target",
			mutate: func(c *config.Config) {
				c.Notifications.Error.Actions = []config.Action{{Title: "Retry"}}
			},
			want: "notifications.error.actions[0].target",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateSkipsNotificationChecksWhenDisabled(t *testing.T) {
	cfg := validConfig(t)
	cfg.Notifications.Disabled = true
	cfg.Notifications.ChannelID = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled notifications to skip checks, got %v", err)
	}
}

func TestSampleConfigIsValid(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	target := filepath.Join(tempHome, "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}

	cfg, _, _, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if len(cfg.Notifications.Error.Actions) != 1 {
		t.Fatalf("expected retry action in sample, got %+v", cfg.Notifications.Error.Actions)
	}
	if len(cfg.Channels) != 1 {
		t.Fatalf("expected sample channel list to replace defaults, got %+v", cfg.Channels)
	}
}

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	return cfg
}
