package dataset

import (
	"sort"
	"time"
)

// ChannelMetadata carries the channel fields nazar cares about. Source files
// may include more; unknown fields are ignored on load.
type ChannelMetadata struct {
	ChannelID       string     `json:"channel_id"`
	Title           string     `json:"title,omitempty"`
	Description     string     `json:"description,omitempty"`
	Country         string     `json:"country,omitempty"`
	SubscriberCount int64      `json:"subscriber_count,omitempty"`
	VideoCount      int64      `json:"video_count,omitempty"`
	RetrievedAt     *time.Time `json:"retrieved_at,omitempty"`
}

// VideoMetadata carries per-video fields from the source scraper.
type VideoMetadata struct {
	VideoID      string     `json:"video_id"`
	Title        string     `json:"title,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ViewCount    int64      `json:"view_count,omitempty"`
	LikeCount    int64      `json:"like_count,omitempty"`
	CommentCount int64      `json:"comment_count,omitempty"`
}

// Comment is a single user-submitted text unit tied to a video.
type Comment struct {
	CommentID   string     `json:"comment_id"`
	Text        string     `json:"text_original"`
	Author      string     `json:"author_display_name,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	LikeCount   int64      `json:"like_count,omitempty"`
}

// VideoData bundles a video with its comments. Comments may be nil when the
// scraper found none (or did not fetch them); both read as empty.
type VideoData struct {
	Metadata VideoMetadata      `json:"video_metadata"`
	Comments map[string]Comment `json:"comments,omitempty"`
}

// CommentCount returns the number of comments known for the video.
func (v VideoData) CommentCount() int {
	return len(v.Comments)
}

// ChannelData is all stored data for a single channel.
type ChannelData struct {
	Metadata       ChannelMetadata      `json:"channel_metadata"`
	Videos         map[string]VideoData `json:"videos"`
	LastSourceSync *time.Time           `json:"last_source_sync,omitempty"`
}

// TotalComments returns the number of comments across all videos.
func (c *ChannelData) TotalComments() int {
	total := 0
	for _, video := range c.Videos {
		total += len(video.Comments)
	}
	return total
}

// VideosNewestFirst returns the channel's videos ordered by publication time,
// newest first. Videos without a timestamp sort last; ties break on video id
// so iteration order is deterministic across runs.
func (c *ChannelData) VideosNewestFirst() []VideoData {
	videos := make([]VideoData, 0, len(c.Videos))
	for _, video := range c.Videos {
		videos = append(videos, video)
	}
	sort.Slice(videos, func(i, j int) bool {
		ti, tj := videos[i].Metadata.PublishedAt, videos[j].Metadata.PublishedAt
		switch {
		case ti == nil && tj == nil:
			return videos[i].Metadata.VideoID < videos[j].Metadata.VideoID
		case ti == nil:
			return false
		case tj == nil:
			return true
		case !ti.Equal(*tj):
			return ti.After(*tj)
		default:
			return videos[i].Metadata.VideoID < videos[j].Metadata.VideoID
		}
	})
	return videos
}

// CommentsNewestFirst returns the video's comments ordered by publication
// time, newest first, with comment id as the deterministic tie-break.
func (v VideoData) CommentsNewestFirst() []Comment {
	comments := make([]Comment, 0, len(v.Comments))
	for _, comment := range v.Comments {
		comments = append(comments, comment)
	}
	sort.Slice(comments, func(i, j int) bool {
		ti, tj := comments[i].PublishedAt, comments[j].PublishedAt
		switch {
		case ti == nil && tj == nil:
			return comments[i].CommentID < comments[j].CommentID
		case ti == nil:
			return false
		case tj == nil:
			return true
		case !ti.Equal(*tj):
			return ti.After(*tj)
		default:
			return comments[i].CommentID < comments[j].CommentID
		}
	})
	return comments
}
