package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"nazar/internal/dataset"
	"nazar/internal/logging"
	"nazar/internal/store"
)

func newChannelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List source files and known channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			sources, err := dataset.ListSources(cfg.Paths.InputDir)
			if err != nil {
				return err
			}
			known, err := dataset.ListChannels(cfg.Paths.DataDir)
			if err != nil {
				return err
			}

			if len(sources) == 0 && len(known) == 0 {
				fmt.Fprintf(out, "No channels found. Place source files in %s and run `nazar update`.\n", cfg.Paths.InputDir)
				return nil
			}

			hasSource := make(map[string]bool, len(sources))
			for _, source := range sources {
				hasSource[source.Key] = true
			}
			keys := make([]string, 0, len(known)+len(sources))
			seen := make(map[string]bool)
			for _, key := range known {
				keys = append(keys, key)
				seen[key] = true
			}
			for _, source := range sources {
				if !seen[source.Key] {
					keys = append(keys, source.Key)
				}
			}

			analysisStore := store.New(cfg.Paths.DataDir, logging.NewNop())

			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				videos, comments := "-", "-"
				lastSync := "-"
				if channel, err := dataset.Load(cfg.Paths.DataDir, key); err == nil {
					videos = strconv.Itoa(len(channel.Videos))
					comments = strconv.Itoa(channel.TotalComments())
					lastSync = formatTime(channel.LastSourceSync)
				} else if !os.IsNotExist(err) {
					return err
				}

				analyzed := "-"
				if analyses, err := analysisStore.Load(key); err == nil {
					analyzed = strconv.Itoa(analyses.Count())
				}

				rows = append(rows, []string{key, yesNo(hasSource[key]), videos, comments, analyzed, lastSync})
			}

			rendered := renderTable(
				[]column{
					{name: "Channel"},
					{name: "Source"},
					{name: "Videos", numeric: true},
					{name: "Comments", numeric: true},
					{name: "Analyzed", numeric: true},
					{name: "Last Sync"},
				},
				rows,
			)
			fmt.Fprintln(out, rendered)
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
