package analysis

import (
	"context"
	"errors"
	"log/slog"

	"nazar/internal/dataset"
	"nazar/internal/logging"
	"nazar/internal/store"
)

// BatchOptions bounds a batch run.
type BatchOptions struct {
	// MaxVideos limits how many videos are visited; 0 means all.
	MaxVideos int
	// CommentsPerVideo limits how many new comments are analyzed per video;
	// 0 means all.
	CommentsPerVideo int
	// VideoID restricts the run to a single video when non-empty.
	VideoID string
	// OnResult, when set, is called after each successfully analyzed comment.
	OnResult func(videoID string, comment dataset.Comment, record store.AnalysisRecord)
}

// Summary reports what a batch run did.
type Summary struct {
	VideosVisited   int
	Analyzed        int
	AlreadyAnalyzed int
	EmptySkipped    int
	Failed          int
}

// Runner walks a channel's videos and feeds new comments through the
// pipeline, accumulating results in the session.
type Runner struct {
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewRunner builds a runner around a pipeline.
func NewRunner(pipeline *Pipeline, logger *slog.Logger) *Runner {
	return &Runner{
		pipeline: pipeline,
		logger:   logging.NewComponentLogger(logger, "runner"),
	}
}

// ProcessBatch analyzes up to opts.CommentsPerVideo new comments in up to
// opts.MaxVideos videos, newest first on both axes. Comments already present
// in the session's store are skipped without touching the models. Processing
// is strictly sequential; cancellation takes effect between comments, never
// mid-comment.
func (r *Runner) ProcessBatch(ctx context.Context, channel *dataset.ChannelData, session *store.Session, opts BatchOptions) (Summary, error) {
	summary := Summary{}

	videos := channel.VideosNewestFirst()
	if opts.VideoID != "" {
		filtered := videos[:0]
		for _, video := range videos {
			if video.Metadata.VideoID == opts.VideoID {
				filtered = append(filtered, video)
			}
		}
		videos = filtered
	}
	if opts.MaxVideos > 0 && len(videos) > opts.MaxVideos {
		videos = videos[:opts.MaxVideos]
	}

	for _, video := range videos {
		summary.VideosVisited++
		videoID := video.Metadata.VideoID

		pending := make([]dataset.Comment, 0, len(video.Comments))
		for _, comment := range video.CommentsNewestFirst() {
			if !session.NeedsAnalysis(videoID, comment.CommentID) {
				summary.AlreadyAnalyzed++
				continue
			}
			pending = append(pending, comment)
		}
		if opts.CommentsPerVideo > 0 && len(pending) > opts.CommentsPerVideo {
			pending = pending[:opts.CommentsPerVideo]
		}

		if len(pending) == 0 {
			r.logger.Debug("no new comments in video",
				logging.String(logging.FieldVideoID, videoID))
			continue
		}

		r.logger.Info("processing video",
			logging.String(logging.FieldVideoID, videoID),
			logging.String("title", video.Metadata.Title),
			logging.Int("new_comments", len(pending)))

		for _, comment := range pending {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			record, err := r.pipeline.Analyze(ctx, comment.Text)
			if err != nil {
				if errors.Is(err, ErrEmptyComment) {
					summary.EmptySkipped++
					r.logger.Warn("skipping comment with empty text",
						logging.String(logging.FieldVideoID, videoID),
						logging.String(logging.FieldCommentID, comment.CommentID))
					continue
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return summary, err
				}
				summary.Failed++
				r.logger.Error("comment analysis failed",
					logging.String(logging.FieldVideoID, videoID),
					logging.String(logging.FieldCommentID, comment.CommentID),
					logging.Error(err))
				continue
			}

			if err := session.Record(videoID, comment.CommentID, video.Metadata.PublishedAt, record); err != nil {
				// Duplicate or closed session: both are programming errors
				// the batch cannot recover from.
				return summary, err
			}
			summary.Analyzed++

			if opts.OnResult != nil {
				opts.OnResult(videoID, comment, record)
			}
		}
	}

	r.logger.Info("batch complete",
		logging.Int("videos", summary.VideosVisited),
		logging.Int("analyzed", summary.Analyzed),
		logging.Int("already_analyzed", summary.AlreadyAnalyzed),
		logging.Int("empty_skipped", summary.EmptySkipped),
		logging.Int("failed", summary.Failed))
	return summary, nil
}
