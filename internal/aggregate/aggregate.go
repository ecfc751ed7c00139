// Package aggregate computes summary statistics over analyzed comments:
// average sentiment and emotion scores per video, irony label distribution,
// and comment-count-weighted rollups for a whole channel.
package aggregate

import (
	"math"
	"time"

	"nazar/internal/store"
)

// Analysis holds averaged scores over a set of analyzed comments.
type Analysis struct {
	TotalAnalyzedComments int                `json:"total_analyzed_comments"`
	AvgPersianSentiment   map[string]float64 `json:"avg_persian_sentiment,omitempty"`
	AvgEnglishEmotions    map[string]float64 `json:"avg_english_emotions,omitempty"`
	IronyDistribution     map[string]float64 `json:"irony_distribution,omitempty"`
	CalculatedAt          time.Time          `json:"calculated_at"`
}

// VideoAggregate pairs a video id with its computed statistics.
type VideoAggregate struct {
	VideoID  string    `json:"video_id"`
	Analysis *Analysis `json:"analysis"`
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func averaged(sums map[string]float64, n int) map[string]float64 {
	if len(sums) == 0 || n == 0 {
		return nil
	}
	out := make(map[string]float64, len(sums))
	for label, total := range sums {
		out[label] = round4(total / float64(n))
	}
	return out
}

// ForVideo averages the model scores of one video's analyzed comments.
// Returns nil when the video has no analyzed comments.
func ForVideo(video *store.VideoAnalyses, now time.Time) *Analysis {
	if video == nil || len(video.Comments) == 0 {
		return nil
	}

	total := len(video.Comments)
	sentimentSums := make(map[string]float64)
	emotionSums := make(map[string]float64)
	ironyCounts := make(map[string]int)

	for _, record := range video.Comments {
		for label, score := range record.PersianSentiment {
			sentimentSums[label] += score
		}
		for label, score := range record.EnglishEmotions {
			emotionSums[label] += score
		}
		if record.Irony != nil && record.Irony.Label != "" {
			ironyCounts[record.Irony.Label]++
		}
	}

	var distribution map[string]float64
	ironyTotal := 0
	for _, count := range ironyCounts {
		ironyTotal += count
	}
	if ironyTotal > 0 {
		distribution = make(map[string]float64, len(ironyCounts))
		for label, count := range ironyCounts {
			distribution[label] = round4(float64(count) / float64(ironyTotal))
		}
	}

	return &Analysis{
		TotalAnalyzedComments: total,
		AvgPersianSentiment:   averaged(sentimentSums, total),
		AvgEnglishEmotions:    averaged(emotionSums, total),
		IronyDistribution:     distribution,
		CalculatedAt:          now.UTC(),
	}
}

// ForChannel rolls per-video aggregates up into one channel-wide figure,
// weighting each video's averages by its analyzed-comment count so that a
// video with many comments moves the channel average proportionally more.
// Returns nil when no video contributes any analyzed comments.
func ForChannel(videos []VideoAggregate, now time.Time) *Analysis {
	totalComments := 0
	sentimentSums := make(map[string]float64)
	emotionSums := make(map[string]float64)
	ironySums := make(map[string]float64)

	for _, video := range videos {
		agg := video.Analysis
		if agg == nil || agg.TotalAnalyzedComments == 0 {
			continue
		}
		weight := float64(agg.TotalAnalyzedComments)
		totalComments += agg.TotalAnalyzedComments

		for label, avg := range agg.AvgPersianSentiment {
			sentimentSums[label] += avg * weight
		}
		for label, avg := range agg.AvgEnglishEmotions {
			emotionSums[label] += avg * weight
		}
		for label, share := range agg.IronyDistribution {
			ironySums[label] += share * weight
		}
	}

	if totalComments == 0 {
		return nil
	}

	return &Analysis{
		TotalAnalyzedComments: totalComments,
		AvgPersianSentiment:   averaged(sentimentSums, totalComments),
		AvgEnglishEmotions:    averaged(emotionSums, totalComments),
		IronyDistribution:     averaged(ironySums, totalComments),
		CalculatedAt:          now.UTC(),
	}
}

// ForStore computes every video aggregate plus the channel rollup in one
// pass over a loaded analysis store.
func ForStore(analyses store.AnalysisStore, now time.Time) ([]VideoAggregate, *Analysis) {
	videoAggs := make([]VideoAggregate, 0, len(analyses))
	for videoID, video := range analyses {
		agg := ForVideo(video, now)
		if agg == nil {
			continue
		}
		videoAggs = append(videoAggs, VideoAggregate{VideoID: videoID, Analysis: agg})
	}
	return videoAggs, ForChannel(videoAggs, now)
}
