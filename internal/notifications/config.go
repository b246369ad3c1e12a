package notifications

import "uploadnotify/internal/config"

// FromConfig builds the per-task notification configuration from the loaded
// settings. It returns nil when notifications are disabled, which turns every
// Handler callback into a no-op.
func FromConfig(cfg *config.Config) *Config {
	if cfg == nil || cfg.Notifications.Disabled {
		return nil
	}
	n := cfg.Notifications
	return &Config{
		ChannelID:       n.ChannelID,
		RingToneEnabled: n.RingToneEnabled,
		Progress:        statusFromConfig(n.Progress),
		Completed:       statusFromConfig(n.Completed),
		Error:           statusFromConfig(n.Error),
		Cancelled:       statusFromConfig(n.Cancelled),
	}
}

// CapabilitiesFromConfig resolves the platform capabilities once.
func CapabilitiesFromConfig(cfg *config.Config) Capabilities {
	if cfg == nil {
		return Capabilities{}
	}
	return Capabilities{
		SupportsNotificationChannels: cfg.Platform.SupportsNotificationChannels,
		OwnsSoundViaChannel:          cfg.Platform.OwnsSoundViaChannel,
	}
}

func statusFromConfig(s config.Status) StatusConfig {
	out := StatusConfig{
		Title:         s.Title,
		IconResource:  s.Icon,
		IconColor:     s.IconColor,
		LargeIcon:     s.LargeIcon,
		ClickAction:   s.ClickAction,
		AutoClear:     s.AutoClear,
		ClearOnAction: s.ClearOnAction,
	}
	if !s.Hidden {
		out.Message = Text(s.Message)
	}
	for _, a := range s.Actions {
		out.Actions = append(out.Actions, Action{Icon: a.Icon, Title: a.Title, Target: a.Target})
	}
	return out
}
