package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizePlatform()
	c.normalizeChannels()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizePlatform() {
	c.Platform.DefaultSound = strings.TrimSpace(c.Platform.DefaultSound)
	if c.Platform.DefaultSound == "" {
		c.Platform.DefaultSound = defaultSound
	}
}

func (c *Config) normalizeChannels() {
	if len(c.Channels) == 0 {
		c.Channels = []Channel{{ID: defaultChannelID, Name: defaultChannelName, Importance: defaultChannelImportance}}
	}
	for i := range c.Channels {
		ch := &c.Channels[i]
		ch.ID = strings.TrimSpace(ch.ID)
		ch.Name = strings.TrimSpace(ch.Name)
		if ch.Name == "" {
			ch.Name = ch.ID
		}
		ch.Importance = strings.ToLower(strings.TrimSpace(ch.Importance))
		if ch.Importance == "" {
			ch.Importance = "default"
		}
	}
}

func (c *Config) normalizeNotifications() {
	n := &c.Notifications
	n.Namespace = strings.TrimSpace(n.Namespace)
	if n.Namespace == "" {
		n.Namespace = defaultNamespace
	}
	n.ChannelID = strings.TrimSpace(n.ChannelID)
	n.NtfyTopic = strings.TrimSpace(n.NtfyTopic)
	if n.RequestTimeout == 0 {
		n.RequestTimeout = defaultRequestTimeout
	}
	if n.NtfyRateLimit == 0 {
		n.NtfyRateLimit = defaultNtfyRateLimit
	}
	if n.NtfyBurst == 0 {
		n.NtfyBurst = defaultNtfyBurst
	}
	for _, status := range []*Status{&n.Progress, &n.Completed, &n.Error, &n.Cancelled} {
		status.Icon = strings.TrimSpace(status.Icon)
		status.IconColor = strings.TrimSpace(status.IconColor)
		status.LargeIcon = strings.TrimSpace(status.LargeIcon)
		status.ClickAction = strings.TrimSpace(status.ClickAction)
		for i := range status.Actions {
			status.Actions[i].Title = strings.TrimSpace(status.Actions[i].Title)
			status.Actions[i].Target = strings.TrimSpace(status.Actions[i].Target)
		}
	}
}
