package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"uploadnotify/internal/config"
	"uploadnotify/internal/notifications"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "Register every channel your tasks use under [[channels]] in %s.\n", filepath.Base(target))
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			for _, line := range configChecks(cfg, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// configChecks reports conditions the loader accepts but a task would trip
// over at runtime.
func configChecks(cfg *config.Config, colorize bool) []string {
	lines := renderSectionHeader("Checks", colorize)

	n := cfg.Notifications
	if n.Disabled {
		lines = append(lines, renderStatusLine("Notifications", statusWarn, "disabled for every task", colorize))
		return lines
	}
	lines = append(lines, renderStatusLine("Notifications", statusOK, "enabled", colorize))

	if !cfg.Platform.SupportsNotificationChannels {
		lines = append(lines, renderStatusLine("Channel", statusInfo, "platform has no channels; check skipped", colorize))
	} else if _, ok := cfg.Channel(n.ChannelID); ok {
		lines = append(lines, renderStatusLine("Channel", statusOK, n.ChannelID, colorize))
	} else {
		lines = append(lines, renderStatusLine("Channel", statusError, fmt.Sprintf("%q is not registered; every task will fail", n.ChannelID), colorize))
	}

	taskCfg := notifications.FromConfig(cfg)
	for _, status := range notifications.Statuses {
		sc, _ := taskCfg.StatusConfig(status)
		label := "Status " + string(status)
		switch {
		case !sc.Shown():
			lines = append(lines, renderStatusLine(label, statusInfo, "hidden", colorize))
		case sc.AutoClear:
			lines = append(lines, renderStatusLine(label, statusInfo, "auto clear", colorize))
		default:
			lines = append(lines, renderStatusLine(label, statusOK, "shown", colorize))
		}
	}

	if strings.TrimSpace(n.NtfyTopic) != "" {
		lines = append(lines, renderStatusLine("ntfy", statusOK, n.NtfyTopic, colorize))
	} else {
		lines = append(lines, renderStatusLine("ntfy", statusInfo, "not configured", colorize))
	}
	return lines
}
