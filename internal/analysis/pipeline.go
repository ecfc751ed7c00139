package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"nazar/internal/inference"
	"nazar/internal/logging"
	"nazar/internal/store"
	"nazar/internal/textutil"
)

// ErrEmptyComment signals a comment whose text is empty after normalization.
// Such comments are skipped, not failed.
var ErrEmptyComment = errors.New("comment text is empty")

// Models identifies the four pretrained models by their hosted ids.
type Models struct {
	PersianSentiment string
	Translation      string
	EnglishEmotion   string
	Irony            string
}

// ModelInvoker is the slice of the inference client the pipeline needs.
type ModelInvoker interface {
	Classify(ctx context.Context, model, text string) ([]inference.Score, error)
	Translate(ctx context.Context, model, text string) (string, error)
}

// Pipeline performs the multi-stage analysis for a single comment.
type Pipeline struct {
	client   ModelInvoker
	models   Models
	maxChars int
	logger   *slog.Logger
	now      func() time.Time
}

// NewPipeline builds a pipeline. maxChars bounds the comment length sent to
// the models; longer comments are truncated.
func NewPipeline(client ModelInvoker, models Models, maxChars int, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		client:   client,
		models:   models,
		maxChars: maxChars,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		now:      time.Now,
	}
}

// Analyze runs all stages for one comment and returns the finished record.
// Any stage error abandons the comment: the record is not partially usable
// and the caller must not persist it. The one exception is a translation
// that comes back empty without an error, which skips the English stages
// and keeps the Persian result.
func (p *Pipeline) Analyze(ctx context.Context, text string) (store.AnalysisRecord, error) {
	var empty store.AnalysisRecord

	normalized := textutil.Normalize(text)
	if normalized == "" {
		return empty, ErrEmptyComment
	}
	if truncated := textutil.Truncate(normalized, p.maxChars); truncated != normalized {
		p.logger.Warn("comment exceeds length limit, truncating",
			logging.Int("length", len([]rune(normalized))),
			logging.Int("limit", p.maxChars))
		normalized = truncated
	}

	record := store.AnalysisRecord{OriginalText: text}

	sentiment, err := p.client.Classify(ctx, p.models.PersianSentiment, normalized)
	if err != nil {
		return empty, fmt.Errorf("persian sentiment: %w", err)
	}
	record.PersianSentiment = scoreMap(sentiment)

	translated, err := p.client.Translate(ctx, p.models.Translation, normalized)
	if err != nil {
		return empty, fmt.Errorf("translation: %w", err)
	}
	translated = strings.TrimSpace(translated)
	record.TranslatedText = translated

	if translated == "" {
		p.logger.Warn("translation produced no text, skipping English stages")
		record.AnalyzedAt = p.now().UTC()
		return record, nil
	}

	emotions, err := p.client.Classify(ctx, p.models.EnglishEmotion, translated)
	if err != nil {
		return empty, fmt.Errorf("english emotion: %w", err)
	}
	record.EnglishEmotions = scoreMap(emotions)

	irony, err := p.client.Classify(ctx, p.models.Irony, translated)
	if err != nil {
		return empty, fmt.Errorf("irony: %w", err)
	}
	if top, ok := topScore(irony); ok {
		record.Irony = &store.IronyResult{
			Label:      top.Label,
			Confidence: round4(top.Score),
		}
	}

	record.AnalyzedAt = p.now().UTC()
	return record, nil
}

func scoreMap(scores []inference.Score) map[string]float64 {
	if len(scores) == 0 {
		return nil
	}
	result := make(map[string]float64, len(scores))
	for _, score := range scores {
		result[score.Label] = round4(score.Score)
	}
	return result
}

func topScore(scores []inference.Score) (inference.Score, bool) {
	if len(scores) == 0 {
		return inference.Score{}, false
	}
	best := scores[0]
	for _, score := range scores[1:] {
		if score.Score > best.Score {
			best = score
		}
	}
	return best, true
}

func round4(value float64) float64 {
	return math.Round(value*10000) / 10000
}
