package dataset

import (
	"maps"
	"time"
)

// MergeStats summarizes what a source merge contributed.
type MergeStats struct {
	NewVideos   int
	NewComments int
}

// MergeFromSource merges a raw source snapshot into the canonical channel
// data. New videos and comments are added, channel and video metadata is
// refreshed from the newer source, and everything already known is kept.
// When existing is nil the source becomes the new baseline.
//
// The merged result is a fresh value; neither input is mutated.
func MergeFromSource(existing, source *ChannelData, now time.Time) (*ChannelData, MergeStats) {
	stats := MergeStats{}
	syncTime := now.UTC()

	if existing == nil {
		merged := cloneChannel(source)
		merged.LastSourceSync = &syncTime
		for _, video := range merged.Videos {
			stats.NewComments += len(video.Comments)
		}
		stats.NewVideos = len(merged.Videos)
		return merged, stats
	}

	merged := cloneChannel(existing)
	merged.Metadata = source.Metadata

	for videoID, sourceVideo := range source.Videos {
		current, known := merged.Videos[videoID]
		if !known {
			merged.Videos[videoID] = cloneVideo(sourceVideo)
			stats.NewVideos++
			stats.NewComments += len(sourceVideo.Comments)
			continue
		}

		current.Metadata = sourceVideo.Metadata
		for commentID, sourceComment := range sourceVideo.Comments {
			if _, seen := current.Comments[commentID]; seen {
				continue
			}
			if current.Comments == nil {
				current.Comments = make(map[string]Comment, len(sourceVideo.Comments))
			}
			current.Comments[commentID] = sourceComment
			stats.NewComments++
		}
		merged.Videos[videoID] = current
	}

	merged.LastSourceSync = &syncTime
	return merged, stats
}

func cloneChannel(channel *ChannelData) *ChannelData {
	clone := &ChannelData{
		Metadata: channel.Metadata,
		Videos:   make(map[string]VideoData, len(channel.Videos)),
	}
	if channel.LastSourceSync != nil {
		sync := *channel.LastSourceSync
		clone.LastSourceSync = &sync
	}
	for videoID, video := range channel.Videos {
		clone.Videos[videoID] = cloneVideo(video)
	}
	return clone
}

func cloneVideo(video VideoData) VideoData {
	clone := VideoData{Metadata: video.Metadata}
	if video.Comments != nil {
		clone.Comments = make(map[string]Comment, len(video.Comments))
		maps.Copy(clone.Comments, video.Comments)
	}
	return clone
}
