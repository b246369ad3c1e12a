package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChannelsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List registered notification channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.buildStack(stackOptions{})
			if err != nil {
				return err
			}
			list := s.registry.List()
			if jsonOutput {
				return writeJSON(cmd, list)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No channels registered")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, ch := range list {
				rows = append(rows, []string{ch.ID, ch.Name, ch.Importance, yesNo(ch.ID == s.cfg.Notifications.ChannelID)})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Importance", "Used"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
