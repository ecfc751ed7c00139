package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nazar/internal/journal"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions [channel]",
		Short: "List past analysis sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("session journal is disabled in configuration")
			}
			channelKey := ""
			if len(args) == 1 {
				channelKey = args[0]
			}

			journalStore, err := journal.Open(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = journalStore.Close() }()

			entries, err := journalStore.ListSessions(cmd.Context(), channelKey, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.StartedAt.Format("2006-01-02 15:04:05"),
					entry.ChannelKey,
					strconv.Itoa(entry.Analyzed),
					strconv.Itoa(entry.AlreadyAnalyzed),
					strconv.Itoa(entry.Failed),
					formatDuration(entry.FinishedAt.Sub(entry.StartedAt)),
					entry.Outcome,
				})
			}

			rendered := renderTable(
				[]column{
					{name: "Started"},
					{name: "Channel"},
					{name: "Analyzed", numeric: true},
					{name: "Skipped", numeric: true},
					{name: "Failed", numeric: true},
					{name: "Duration", numeric: true},
					{name: "Outcome"},
				},
				rows,
			)
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum sessions to show (0 = all)")
	return cmd
}
