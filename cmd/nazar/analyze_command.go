package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nazar/internal/analysis"
	"nazar/internal/dataset"
	"nazar/internal/inference"
	"nazar/internal/journal"
	"nazar/internal/logging"
	"nazar/internal/store"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		maxVideos    int
		commentLimit int
		videoID      string
		discard      bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <channel>",
		Short: "Run model analysis over a channel's unanalyzed comments",
		Long: "Feeds new comments through the Persian sentiment, translation, emotion, " +
			"and irony models, newest videos and comments first. Comments analyzed in " +
			"earlier runs are skipped. Results are saved when the batch finishes unless " +
			"--discard is given; Ctrl-C stops between comments and keeps completed work.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			channelKey := args[0]
			out := cmd.OutOrStdout()

			logger, err := ctx.newLogger(verbose)
			if err != nil {
				return err
			}

			channel, err := dataset.Load(cfg.Paths.DataDir, channelKey)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("channel %q has no data yet; run `nazar update %s` first", channelKey, channelKey)
				}
				return err
			}

			analysisStore, err := ctx.analysisStore(logger)
			if err != nil {
				return err
			}
			release, err := analysisStore.Lock(channelKey)
			if err != nil {
				if errors.Is(err, store.ErrChannelLocked) {
					return fmt.Errorf("channel %q is being analyzed by another nazar process", channelKey)
				}
				return err
			}
			defer release()

			session, err := store.NewSession(analysisStore, channelKey)
			if err != nil {
				return err
			}

			client := inference.NewClient(inference.Config{
				BaseURL:        cfg.Inference.BaseURL,
				APIToken:       cfg.Inference.APIToken,
				TimeoutSeconds: cfg.Inference.TimeoutSeconds,
			})
			pipeline := analysis.NewPipeline(client, analysis.Models{
				PersianSentiment: cfg.Inference.PersianSentimentModel,
				Translation:      cfg.Inference.TranslationModel,
				EnglishEmotion:   cfg.Inference.EnglishEmotionModel,
				Irony:            cfg.Inference.IronyModel,
			}, cfg.Analysis.MaxCommentChars, logger)
			runner := analysis.NewRunner(pipeline, logger)

			if !cmd.Flags().Changed("comments") {
				commentLimit = cfg.Analysis.CommentsPerVideo
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			entry := journal.NewEntry(channelKey)
			started := time.Now()

			var onResult func(string, dataset.Comment, store.AnalysisRecord)
			if isTerminal(os.Stdout) {
				done := 0
				onResult = func(videoID string, comment dataset.Comment, _ store.AnalysisRecord) {
					done++
					fmt.Fprintf(out, "\r  analyzed %d (video %s, comment %s)", done, videoID, comment.CommentID)
				}
				defer fmt.Fprintln(out)
			}

			summary, runErr := runner.ProcessBatch(runCtx, channel, session, analysis.BatchOptions{
				MaxVideos:        maxVideos,
				CommentsPerVideo: commentLimit,
				VideoID:          videoID,
				OnResult:         onResult,
			})

			interrupted := errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded)
			if runErr != nil && !interrupted {
				session.Discard()
				return runErr
			}

			entry.FinishedAt = time.Now().UTC()
			entry.VideosVisited = summary.VideosVisited
			entry.Analyzed = summary.Analyzed
			entry.AlreadyAnalyzed = summary.AlreadyAnalyzed
			entry.EmptySkipped = summary.EmptySkipped
			entry.Failed = summary.Failed

			if discard {
				session.Discard()
				entry.Outcome = journal.OutcomeDiscarded
				fmt.Fprintf(out, "Discarded %s (dry run)\n", pluralize(summary.Analyzed, "analysis result"))
			} else {
				if err := session.Commit(); err != nil {
					return err
				}
				entry.Outcome = journal.OutcomeSaved
			}

			if cfg.Journal.Enabled {
				if journalStore, err := journal.Open(cfg); err != nil {
					logger.Warn("journal unavailable", logging.Error(err))
				} else {
					if err := journalStore.RecordSession(cmd.Context(), entry); err != nil {
						logger.Warn("failed to record session", logging.Error(err))
					}
					_ = journalStore.Close()
				}
			}

			if interrupted {
				fmt.Fprintln(out, "Interrupted; completed results were kept.")
			}
			fmt.Fprintf(out, "Channel %s: analyzed %d, skipped %d already done, %d empty, %d failed across %s in %s\n",
				channelKey,
				summary.Analyzed,
				summary.AlreadyAnalyzed,
				summary.EmptySkipped,
				summary.Failed,
				pluralize(summary.VideosVisited, "video"),
				formatDuration(time.Since(started)))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxVideos, "videos", 0, "Maximum number of videos to process (0 = all)")
	cmd.Flags().IntVar(&commentLimit, "comments", 0, "Maximum new comments per video (default from config)")
	cmd.Flags().StringVar(&videoID, "video", "", "Restrict analysis to a single video id")
	cmd.Flags().BoolVar(&discard, "discard", false, "Run the analysis but do not save results")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
