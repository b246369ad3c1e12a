package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"uploadnotify/internal/notifications"
	"uploadnotify/internal/tray"
	"uploadnotify/internal/upload"
)

type previewOutput struct {
	Status         notifications.Status        `json:"status"`
	NotificationID int                         `json:"notification_id"`
	Shown          bool                        `json:"shown"`
	Notification   *notifications.Notification `json:"notification,omitempty"`
}

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var (
		fileName   string
		totalBytes int64
		uploaded   int64
		elapsed    time.Duration
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:       "preview <progress|completed|error|cancelled>",
		Short:     "Render the notification a task status would produce",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"progress", "completed", "error", "cancelled"},
		RunE: func(cmd *cobra.Command, args []string) error {
			status := notifications.Status(strings.ToLower(strings.TrimSpace(args[0])))
			if !validStatus(status) {
				return fmt.Errorf("unknown status %q (use progress, completed, error, or cancelled)", args[0])
			}

			s, err := ctx.buildStack(stackOptions{})
			if err != nil {
				return err
			}

			now := time.Now()
			info := upload.Info{
				ID:            "preview",
				StartTime:     now.Add(-elapsed),
				TotalBytes:    totalBytes,
				UploadedBytes: min(uploaded, totalBytes),
				Files:         []upload.File{{Path: fileName, Size: totalBytes}},
			}
			id := s.cfg.Notifications.BaseNotificationID

			if err := s.handler.OnInitialize(info, id, s.taskCfg); err != nil {
				return err
			}
			shownAt := id
			switch status {
			case notifications.StatusProgress:
				s.handler.OnProgress(info, id, s.taskCfg)
			case notifications.StatusCompleted:
				info.UploadedBytes = info.TotalBytes
				info.Files[0].Uploaded = true
				s.handler.OnSuccess(info, id, s.taskCfg, upload.ServerResponse{Code: 200})
				shownAt = notifications.TerminalID(id)
			case notifications.StatusError:
				s.handler.OnError(info, id, s.taskCfg, errors.New("sample failure"))
				shownAt = notifications.TerminalID(id)
			case notifications.StatusCancelled:
				s.handler.OnError(info, id, s.taskCfg, upload.ErrUserCancelled)
				shownAt = notifications.TerminalID(id)
			}

			result := previewOutput{Status: status, NotificationID: shownAt}
			if n, ok := s.tray.Get(shownAt); ok {
				result.Shown = true
				result.Notification = &n
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			if !result.Shown {
				fmt.Fprintf(out, "No notification shown for %s\n", status)
				return nil
			}
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Preview", kindForStatus(status), tray.KindLabel(status), colorize))
			fmt.Fprintln(out, renderFields(notificationFields(shownAt, *result.Notification)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fileName, "file", "/tmp/holiday-photos.zip", "Sample file path")
	cmd.Flags().Int64Var(&totalBytes, "size", 10*1024*1024, "Sample total size in bytes")
	cmd.Flags().Int64Var(&uploaded, "uploaded", 4*1024*1024, "Sample uploaded bytes")
	cmd.Flags().DurationVar(&elapsed, "elapsed", 65*time.Second, "Sample elapsed time")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func validStatus(status notifications.Status) bool {
	for _, s := range notifications.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func notificationFields(id int, n notifications.Notification) [][2]string {
	fields := [][2]string{
		{"ID", strconv.Itoa(id)},
		{"Kind", tray.KindLabel(n.Status)},
		{"Channel", n.ChannelID},
		{"Group", n.Group},
		{"Title", n.Title},
		{"Text", n.Text},
		{"Icon", n.SmallIcon},
		{"Color", n.Color},
		{"Ongoing", yesNo(n.Ongoing)},
		{"Dismiss on tap", yesNo(n.AutoCancel)},
		{"Progress", formatProgress(n.Progress)},
	}
	if n.LargeIcon != "" {
		fields = append(fields, [2]string{"Large icon", n.LargeIcon})
	}
	if n.ClickAction != "" {
		fields = append(fields, [2]string{"Click", n.ClickAction})
	}
	for i, a := range n.Actions {
		fields = append(fields, [2]string{fmt.Sprintf("Action %d", i+1), a.Title + " -> " + a.Target})
	}
	if n.Sound != "" {
		fields = append(fields, [2]string{"Sound", n.Sound})
	}
	return fields
}

func formatProgress(p notifications.Progress) string {
	switch {
	case p.Max == 0:
		return "-"
	case p.Indeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("%d/%d", p.Current, p.Max)
	}
}
