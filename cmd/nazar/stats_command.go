package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"nazar/internal/aggregate"
	"nazar/internal/dataset"
	"nazar/internal/logging"
	"nazar/internal/store"
)

type channelStats struct {
	Channel         string                     `json:"channel"`
	Videos          int                        `json:"videos"`
	Comments        int                        `json:"comments"`
	Analyzed        int                        `json:"analyzed"`
	LastSourceSync  *time.Time                 `json:"last_source_sync,omitempty"`
	ChannelAnalysis *aggregate.Analysis        `json:"channel_analysis,omitempty"`
	VideoAnalyses   []aggregate.VideoAggregate `json:"video_analyses,omitempty"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats <channel>",
		Short: "Show analysis coverage and aggregate scores for a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			channelKey := args[0]
			out := cmd.OutOrStdout()

			channel, err := dataset.Load(cfg.Paths.DataDir, channelKey)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("channel %q has no data yet; run `nazar update %s` first", channelKey, channelKey)
				}
				return err
			}

			analyses, err := store.New(cfg.Paths.DataDir, logging.NewNop()).Load(channelKey)
			if err != nil {
				return err
			}

			videoAggs, channelAgg := aggregate.ForStore(analyses, time.Now())
			sort.Slice(videoAggs, func(i, j int) bool { return videoAggs[i].VideoID < videoAggs[j].VideoID })

			stats := channelStats{
				Channel:         channelKey,
				Videos:          len(channel.Videos),
				Comments:        channel.TotalComments(),
				Analyzed:        analyses.Count(),
				LastSourceSync:  channel.LastSourceSync,
				ChannelAnalysis: channelAgg,
				VideoAnalyses:   videoAggs,
			}

			if jsonOutput {
				return writeJSON(cmd, stats)
			}

			fmt.Fprintf(out, "Channel %s: %s, %s, %d analyzed (last sync %s)\n",
				channelKey,
				pluralize(stats.Videos, "video"),
				pluralize(stats.Comments, "comment"),
				stats.Analyzed,
				formatTime(stats.LastSourceSync))

			if channelAgg == nil {
				fmt.Fprintln(out, "No analyzed comments yet; run `nazar analyze` to populate aggregates.")
				return nil
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderScoreTable("Persian Sentiment", channelAgg.AvgPersianSentiment))
			if len(channelAgg.AvgEnglishEmotions) > 0 {
				fmt.Fprintln(out, renderScoreTable("English Emotions", channelAgg.AvgEnglishEmotions))
			}
			if len(channelAgg.IronyDistribution) > 0 {
				fmt.Fprintln(out, renderScoreTable("Irony Distribution", channelAgg.IronyDistribution))
			}

			videoRows := make([][]string, 0, len(videoAggs))
			for _, video := range videoAggs {
				title := video.VideoID
				if data, ok := channel.Videos[video.VideoID]; ok && data.Metadata.Title != "" {
					title = data.Metadata.Title
				}
				videoRows = append(videoRows, []string{
					video.VideoID,
					title,
					strconv.Itoa(video.Analysis.TotalAnalyzedComments),
					topLabel(video.Analysis.AvgPersianSentiment),
				})
			}
			if len(videoRows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]column{
						{name: "Video"},
						{name: "Title"},
						{name: "Analyzed", numeric: true},
						{name: "Top Sentiment"},
					},
					videoRows,
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit statistics as JSON")
	return cmd
}

func renderScoreTable(title string, scores map[string]float64) string {
	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return scores[labels[i]] > scores[labels[j]] })

	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []string{label, formatScore(scores[label])})
	}
	return renderTable([]column{{name: title}, {name: "Avg", numeric: true}}, rows)
}

func topLabel(scores map[string]float64) string {
	best := ""
	bestScore := -1.0
	for label, score := range scores {
		if score > bestScore || (score == bestScore && label < best) {
			best = label
			bestScore = score
		}
	}
	if best == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", best, formatScore(bestScore))
}
