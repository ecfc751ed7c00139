package store

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nazar/internal/logging"
)

// ErrDuplicateAnalysis signals a Record call for a comment that is already
// analyzed. The skip check should have prevented the call, so this is a
// programming error and fails loudly instead of silently overwriting.
var ErrDuplicateAnalysis = errors.New("comment already analyzed")

// ErrSessionClosed signals an operation on a session that was already
// committed or discarded.
var ErrSessionClosed = errors.New("session already committed or discarded")

type sessionState int

const (
	sessionAccumulating sessionState = iota
	sessionSaved
	sessionDiscarded
)

// Session accumulates newly computed analysis records in memory during one
// run. Records reach the persisted store only on Commit; Discard drops them
// without touching the base store. A session moves Accumulating -> Saved or
// Accumulating -> Discarded exactly once.
type Session struct {
	store      *Store
	channelKey string
	base       AnalysisStore
	pending    AnalysisStore
	state      sessionState
	logger     *slog.Logger
}

// NewSession loads the channel's persisted store and opens a session on it.
func NewSession(s *Store, channelKey string) (*Session, error) {
	base, err := s.Load(channelKey)
	if err != nil {
		return nil, err
	}
	return &Session{
		store:      s,
		channelKey: channelKey,
		base:       base,
		pending:    make(AnalysisStore),
		logger:     logging.NewComponentLogger(s.logger, "session"),
	}, nil
}

// NeedsAnalysis reports whether the comment is absent from both the base
// store and this session's accumulated records.
func (s *Session) NeedsAnalysis(videoID, commentID string) bool {
	return NeedsAnalysis(s.base, videoID, commentID) && NeedsAnalysis(s.pending, videoID, commentID)
}

// Record inserts a newly computed analysis record. The (videoID, commentID)
// pair must not already be present in the base store or the accumulator;
// violating that returns ErrDuplicateAnalysis.
func (s *Session) Record(videoID, commentID string, videoPublishedAt *time.Time, record AnalysisRecord) error {
	if s.state != sessionAccumulating {
		return ErrSessionClosed
	}
	if !s.NeedsAnalysis(videoID, commentID) {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateAnalysis, videoID, commentID)
	}

	video, ok := s.pending[videoID]
	if !ok {
		video = &VideoAnalyses{
			PublishedAt: videoPublishedAt,
			Comments:    make(map[string]AnalysisRecord),
		}
		s.pending[videoID] = video
	}
	video.Comments[commentID] = record
	return nil
}

// Pending returns the number of records accumulated so far.
func (s *Session) Pending() int {
	return s.pending.Count()
}

// Commit merges the accumulated records into the base store and persists the
// result. The merge unions comment maps video by video; accumulated entries
// are guaranteed disjoint from existing ones by Record's duplicate check.
func (s *Session) Commit() error {
	if s.state != sessionAccumulating {
		return ErrSessionClosed
	}

	merged := s.base.Clone()
	for videoID, video := range s.pending {
		target, ok := merged[videoID]
		if !ok {
			merged[videoID] = video
			continue
		}
		if target.PublishedAt == nil {
			target.PublishedAt = video.PublishedAt
		}
		for commentID, record := range video.Comments {
			target.Comments[commentID] = record
		}
	}

	if err := s.store.Save(s.channelKey, merged); err != nil {
		return err
	}

	s.base = merged
	s.state = sessionSaved
	s.logger.Info("session committed",
		logging.String(logging.FieldChannel, s.channelKey),
		logging.Int("new_records", s.pending.Count()),
		logging.Int("total_records", merged.Count()))
	s.pending = make(AnalysisStore)
	return nil
}

// Discard drops all accumulated records without touching the base store.
func (s *Session) Discard() {
	if s.state != sessionAccumulating {
		return
	}
	dropped := s.pending.Count()
	s.pending = make(AnalysisStore)
	s.state = sessionDiscarded
	s.logger.Info("session discarded",
		logging.String(logging.FieldChannel, s.channelKey),
		logging.Int("dropped_records", dropped))
}

// Snapshot returns the base store as loaded plus any committed changes.
// Callers must not mutate the returned maps.
func (s *Session) Snapshot() AnalysisStore {
	return s.base
}
