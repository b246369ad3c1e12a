package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"uploadnotify/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification to the configured ntfy topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.buildStack(stackOptions{mirror: true})
			if err != nil {
				return err
			}
			if s.ntfy == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Notification not sent")
				return errors.New("notifications.ntfy_topic is not configured")
			}

			n := notifications.Notification{
				Status:    notifications.StatusCompleted,
				ChannelID: s.cfg.Notifications.ChannelID,
				Group:     s.cfg.Notifications.Namespace,
				Title:     "uploadnotify",
				Text:      "Test notification from uploadnotify",
			}
			if err := s.ntfy.Publish(cmd.Context(), n); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
