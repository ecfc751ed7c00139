package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"nazar/internal/dataset"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update <channel>",
		Short: "Merge a channel's source file into the canonical dataset",
		Long: "Reads the raw source file for the channel from the input directory and " +
			"merges it into the canonical channel file, adding new videos and comments " +
			"while leaving everything already present untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			channelKey := args[0]
			out := cmd.OutOrStdout()

			sourcePath := filepath.Join(cfg.Paths.InputDir, channelKey+".json")
			source, err := dataset.LoadSource(sourcePath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("no source file for channel %q at %s", channelKey, sourcePath)
				}
				return err
			}

			existing, err := dataset.Load(cfg.Paths.DataDir, channelKey)
			if err != nil {
				if !os.IsNotExist(err) {
					return err
				}
				existing = nil
			}

			merged, stats := dataset.MergeFromSource(existing, source, time.Now().UTC())
			if err := dataset.Save(cfg.Paths.DataDir, channelKey, merged); err != nil {
				return err
			}

			fmt.Fprintf(out, "Merged %s: %s, %s (now %s across %s)\n",
				channelKey,
				pluralize(stats.NewVideos, "new video"),
				pluralize(stats.NewComments, "new comment"),
				pluralize(merged.TotalComments(), "comment"),
				pluralize(len(merged.Videos), "video"))
			return nil
		},
	}
}
