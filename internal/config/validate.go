package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validLogFormats  = map[string]struct{}{"console": {}, "json": {}}
	validLogLevels   = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}
	validImportances = map[string]struct{}{"min": {}, "low": {}, "default": {}, "high": {}}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateChannels(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	return nil
}

func (c *Config) validateChannels() error {
	seen := make(map[string]struct{}, len(c.Channels))
	for i, ch := range c.Channels {
		if ch.ID == "" {
			return fmt.Errorf("channels[%d].id must be set", i)
		}
		if _, dup := seen[ch.ID]; dup {
			return fmt.Errorf("channels[%d].id %q is registered twice", i, ch.ID)
		}
		seen[ch.ID] = struct{}{}
		if _, ok := validImportances[ch.Importance]; !ok {
			return fmt.Errorf("channels[%d].importance: unsupported value %q", i, ch.Importance)
		}
	}
	return nil
}

// validateNotifications checks shape only. The lifecycle handler reports an
// unregistered channel_id when the first task starts.
func (c *Config) validateNotifications() error {
	n := c.Notifications
	if n.Disabled {
		return nil
	}
	if n.ChannelID == "" {
		return errors.New("notifications.channel_id must be set unless notifications.disabled is true")
	}
	if n.BaseNotificationID < 0 {
		return errors.New("notifications.base_notification_id must be >= 0")
	}
	if n.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	if n.NtfyRateLimit <= 0 {
		return errors.New("notifications.ntfy_rate_limit must be positive")
	}
	if n.NtfyBurst <= 0 {
		return errors.New("notifications.ntfy_burst must be positive")
	}
	if n.NtfyTopic != "" && !strings.HasPrefix(n.NtfyTopic, "http://") && !strings.HasPrefix(n.NtfyTopic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL, got %q", n.NtfyTopic)
	}
	statuses := []struct {
		key    string
		status Status
	}{
		{"progress", n.Progress},
		{"completed", n.Completed},
		{"error", n.Error},
		{"cancelled", n.Cancelled},
	}
	for _, s := range statuses {
		for i, action := range s.status.Actions {
			if action.Title == "" {
				return fmt.Errorf("notifications.%s.actions[%d].title must be set", s.key, i)
			}
			if action.Target == "" {
				return fmt.Errorf("notifications.%s.actions[%d].target must be set", s.key, i)
			}
		}
	}
	return nil
}
