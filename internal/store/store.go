package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"nazar/internal/fileutil"
	"nazar/internal/logging"
)

// ErrMalformedStore marks a persisted analysis file that could not be
// parsed. The file on disk is left untouched for manual inspection.
var ErrMalformedStore = errors.New("malformed analysis store")

// ErrChannelLocked means another nazar process holds the channel's lock.
var ErrChannelLocked = errors.New("channel is locked by another process")

// Store reads and writes per-channel analysis files under a data directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a store rooted at dir.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "store"),
	}
}

func (s *Store) filePath(channelKey string) string {
	return filepath.Join(s.dir, "analysis_"+channelKey+".json")
}

// Load reads the persisted store for a channel. A missing file yields an
// empty store and no error; unparseable content fails with ErrMalformedStore.
func (s *Store) Load(channelKey string) (AnalysisStore, error) {
	path := s.filePath(channelKey)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no analysis store yet, starting empty",
				logging.String(logging.FieldChannel, channelKey))
			return make(AnalysisStore), nil
		}
		return nil, fmt.Errorf("read analysis store: %w", err)
	}

	var loaded AnalysisStore
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedStore, filepath.Base(path), err)
	}
	if loaded == nil {
		loaded = make(AnalysisStore)
	}
	for videoID, video := range loaded {
		if video == nil {
			loaded[videoID] = &VideoAnalyses{Comments: make(map[string]AnalysisRecord)}
			continue
		}
		if video.Comments == nil {
			video.Comments = make(map[string]AnalysisRecord)
		}
	}

	s.logger.Debug("loaded analysis store",
		logging.String(logging.FieldChannel, channelKey),
		logging.Int("records", loaded.Count()))
	return loaded, nil
}

// Save writes the full store for a channel, replacing any prior file. The
// write is atomic: content goes to a temp file first and is renamed over the
// old file, so a crash mid-write cannot corrupt the previous valid file.
func (s *Store) Save(channelKey string, analyses AnalysisStore) error {
	if err := fileutil.WriteJSONAtomic(s.filePath(channelKey), analyses); err != nil {
		return fmt.Errorf("save analysis store: %w", err)
	}

	s.logger.Debug("saved analysis store",
		logging.String(logging.FieldChannel, channelKey),
		logging.Int("records", analyses.Count()))
	return nil
}

// Lock acquires the per-channel lock file, enforcing single-process access
// to a channel's analysis data. The returned release function must be called
// when the session ends.
func (s *Store) Lock(channelKey string) (func(), error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := flock.New(filepath.Join(s.dir, "analysis_"+channelKey+".lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire channel lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChannelLocked, channelKey)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release channel lock",
				logging.String(logging.FieldChannel, channelKey),
				logging.Error(err))
		}
	}, nil
}
