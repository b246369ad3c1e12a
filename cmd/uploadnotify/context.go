package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"uploadnotify/internal/channels"
	"uploadnotify/internal/config"
	"uploadnotify/internal/foreground"
	"uploadnotify/internal/logging"
	"uploadnotify/internal/notifications"
	"uploadnotify/internal/placeholders"
	"uploadnotify/internal/tray"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// stack is the handler with its collaborators, wired from configuration.
type stack struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *channels.Registry
	tray     *tray.Tray
	holder   *foreground.Holder
	ntfy     *notifications.NtfyDelivery
	handler  *notifications.Handler
	taskCfg  *notifications.Config
}

type stackOptions struct {
	foreground bool
	mirror     bool
}

func (c *commandContext) buildStack(opts stackOptions) (*stack, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	registry, err := channels.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("register channels: %w", err)
	}

	s := &stack{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		tray:     tray.New(),
		holder:   foreground.New(opts.foreground && cfg.Platform.ExecuteInForeground, logger),
		taskCfg:  notifications.FromConfig(cfg),
	}

	var delivery notifications.Delivery = s.tray
	if opts.mirror {
		s.ntfy = notifications.NewNtfyDelivery(cfg, logger)
		delivery = notifications.NewFanout(s.tray, s.ntfy)
	}

	s.handler = notifications.New(notifications.Dependencies{
		Delivery:     delivery,
		Channels:     registry,
		Host:         s.holder,
		Placeholders: placeholders.New(nil),
		Sounds:       notifications.StaticSound(cfg.Platform.DefaultSound),
		Capabilities: notifications.CapabilitiesFromConfig(cfg),
		Namespace:    cfg.Notifications.Namespace,
	}, notifications.WithLogger(logger))
	return s, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
