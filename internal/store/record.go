package store

import "time"

// IronyResult is the label and confidence produced by the irony classifier.
type IronyResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// AnalysisRecord holds the full set of model outputs computed for one
// comment. Created exactly once per (video, comment) pair, never mutated.
//
// English-stage fields stay empty when the translation stage produced
// nothing; Persian sentiment stands on its own.
type AnalysisRecord struct {
	OriginalText     string             `json:"original_text"`
	PersianSentiment map[string]float64 `json:"persian_sentiment,omitempty"`
	TranslatedText   string             `json:"translated_text,omitempty"`
	EnglishEmotions  map[string]float64 `json:"english_emotions,omitempty"`
	Irony            *IronyResult       `json:"irony,omitempty"`
	AnalyzedAt       time.Time          `json:"analyzed_at"`
}

// VideoAnalyses groups a video's analyzed comments with its publication time.
type VideoAnalyses struct {
	PublishedAt *time.Time                `json:"published_at,omitempty"`
	Comments    map[string]AnalysisRecord `json:"comments"`
}

// AnalysisStore is the in-memory form of one channel's persisted analysis
// file: video id, then comment id, to record.
type AnalysisStore map[string]*VideoAnalyses

// NeedsAnalysis reports whether the (videoID, commentID) pair is absent from
// the store. Pure function: no side effects, false iff the entry exists.
// An absent videoID counts as absent.
func NeedsAnalysis(s AnalysisStore, videoID, commentID string) bool {
	video, ok := s[videoID]
	if !ok || video == nil {
		return true
	}
	_, analyzed := video.Comments[commentID]
	return !analyzed
}

// Count returns the total number of analysis records in the store.
func (s AnalysisStore) Count() int {
	total := 0
	for _, video := range s {
		if video != nil {
			total += len(video.Comments)
		}
	}
	return total
}

// Clone returns a deep copy of the store.
func (s AnalysisStore) Clone() AnalysisStore {
	clone := make(AnalysisStore, len(s))
	for videoID, video := range s {
		if video == nil {
			clone[videoID] = nil
			continue
		}
		copied := &VideoAnalyses{
			Comments: make(map[string]AnalysisRecord, len(video.Comments)),
		}
		if video.PublishedAt != nil {
			published := *video.PublishedAt
			copied.PublishedAt = &published
		}
		for commentID, record := range video.Comments {
			copied.Comments[commentID] = record
		}
		clone[videoID] = copied
	}
	return clone
}
