package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"uploadnotify/internal/replay"
	"uploadnotify/internal/tray"
)

type replayOutput struct {
	Result replay.Result   `json:"result"`
	Tray   []tray.Entry    `json:"tray"`
	Log    []tray.LogEntry `json:"log"`
	Error  string          `json:"error,omitempty"`
}

func newReplayCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		showLog    bool
		mirror     bool
	)

	cmd := &cobra.Command{
		Use:   "replay <script.jsonl>",
		Short: "Run a scripted upload session through the notification handler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := replay.LoadScript(args[0])
			if err != nil {
				return err
			}

			s, err := ctx.buildStack(stackOptions{foreground: true, mirror: mirror})
			if err != nil {
				return err
			}

			runner := replay.NewRunner(replay.Options{
				Handler:    s.handler,
				Config:     s.taskCfg,
				Foreground: s.holder,
				BaseID:     s.cfg.Notifications.BaseNotificationID,
				Logger:     s.logger,
			})
			result, runErr := runner.Run(cmd.Context(), events)

			if jsonOutput {
				out := replayOutput{Result: result, Tray: s.tray.Snapshot(), Log: s.tray.Log()}
				if runErr != nil {
					out.Error = runErr.Error()
				}
				if err := writeJSON(cmd, out); err != nil {
					return err
				}
				return runErr
			}

			w := cmd.OutOrStdout()
			colorize := shouldColorize(w)
			printTasks(w, result, colorize)
			printTray(w, s.tray.Snapshot())
			if showLog {
				printDeliveryLog(w, s.tray.Log())
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showLog, "log", false, "Include every delivery operation")
	cmd.Flags().BoolVar(&mirror, "ntfy", false, "Mirror terminal notifications to the configured ntfy topic")
	return cmd
}

func printTasks(w io.Writer, result replay.Result, colorize bool) {
	for _, line := range renderSectionHeader("Tasks", colorize) {
		fmt.Fprintln(w, line)
	}
	for _, task := range result.Tasks {
		kind := statusInfo
		switch task.Outcome {
		case replay.OutcomeSucceeded:
			kind = statusOK
		case replay.OutcomeCancelled:
			kind = statusWarn
		case replay.OutcomeFailed, replay.OutcomeAborted:
			kind = statusError
		}
		msg := fmt.Sprintf("%s (%d%%, id %d)", task.Outcome, task.Progress, task.NotificationID)
		if task.Error != "" {
			msg += ": " + task.Error
		}
		fmt.Fprintln(w, renderStatusLine(task.TaskID, kind, msg, colorize))
	}
	fmt.Fprintln(w)
}

func printTray(w io.Writer, entries []tray.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Tray is empty")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		n := e.Notification
		rows = append(rows, []string{strconv.Itoa(e.ID), tray.KindLabel(n.Status), n.Title, n.Text, formatProgress(n.Progress)})
	}
	fmt.Fprintln(w, renderTable([]string{"ID", "Kind", "Title", "Text", "Progress"}, rows, []columnAlignment{alignRight}))
}

func printDeliveryLog(w io.Writer, log []tray.LogEntry) {
	rows := make([][]string, 0, len(log))
	for _, e := range log {
		rows = append(rows, []string{strconv.Itoa(e.Seq), string(e.Op), strconv.Itoa(e.ID), tray.KindLabel(e.Status), e.Title})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Op", "ID", "Kind", "Title"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
}
