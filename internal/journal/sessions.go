package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session outcomes.
const (
	OutcomeSaved     = "saved"
	OutcomeDiscarded = "discarded"
)

// Entry is one recorded analysis session.
type Entry struct {
	ID              string
	ChannelKey      string
	StartedAt       time.Time
	FinishedAt      time.Time
	VideosVisited   int
	Analyzed        int
	AlreadyAnalyzed int
	EmptySkipped    int
	Failed          int
	Outcome         string
}

// NewEntry stamps a fresh session entry with a unique id and start time.
func NewEntry(channelKey string) Entry {
	return Entry{
		ID:         uuid.NewString(),
		ChannelKey: channelKey,
		StartedAt:  time.Now().UTC(),
	}
}

// RecordSession appends a finished session to the journal.
func (s *Store) RecordSession(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.FinishedAt.IsZero() {
		entry.FinishedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (
            id, channel_key, started_at, finished_at,
            videos_visited, analyzed, already_analyzed, empty_skipped, failed,
            outcome
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.ChannelKey,
		entry.StartedAt.UTC().Format(time.RFC3339Nano),
		entry.FinishedAt.UTC().Format(time.RFC3339Nano),
		entry.VideosVisited,
		entry.Analyzed,
		entry.AlreadyAnalyzed,
		entry.EmptySkipped,
		entry.Failed,
		entry.Outcome,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// ListSessions returns recorded sessions newest first, optionally filtered
// to one channel. A limit of 0 returns everything.
func (s *Store) ListSessions(ctx context.Context, channelKey string, limit int) ([]Entry, error) {
	query := `SELECT id, channel_key, started_at, finished_at,
        videos_visited, analyzed, already_analyzed, empty_skipped, failed,
        outcome FROM sessions`
	args := []any{}
	if channelKey != "" {
		query += " WHERE channel_key = ?"
		args = append(args, channelKey)
	}
	query += " ORDER BY started_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			started  string
			finished string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.ChannelKey,
			&started,
			&finished,
			&entry.VideosVisited,
			&entry.Analyzed,
			&entry.AlreadyAnalyzed,
			&entry.EmptySkipped,
			&entry.Failed,
			&entry.Outcome,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if entry.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if entry.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}
