package dataset

import (
	"testing"
	"time"
)

func TestMergeFromSourceBaseline(t *testing.T) {
	source := sampleChannel()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	merged, stats := MergeFromSource(nil, source, now)
	if stats.NewVideos != 2 || stats.NewComments != 1 {
		t.Errorf("stats = %+v, want 2 new videos, 1 new comment", stats)
	}
	if merged.LastSourceSync == nil || !merged.LastSourceSync.Equal(now) {
		t.Error("LastSourceSync should be stamped with merge time")
	}

	// Baseline must be an independent copy.
	merged.Videos["v1"].Comments["c_extra"] = Comment{CommentID: "c_extra"}
	if _, leaked := source.Videos["v1"].Comments["c_extra"]; leaked {
		t.Error("merge must not alias the source maps")
	}
}

func TestMergeFromSourceAddsOnlyNew(t *testing.T) {
	existing := sampleChannel()
	existingComment := existing.Videos["v1"].Comments["c1"]

	published := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	source := &ChannelData{
		Metadata: ChannelMetadata{ChannelID: "UC123", Title: "Pars Today (renamed)"},
		Videos: map[string]VideoData{
			"v1": {
				Metadata: VideoMetadata{VideoID: "v1", Title: "First (updated)"},
				Comments: map[string]Comment{
					"c1": {CommentID: "c1", Text: "changed upstream"},
					"c2": {CommentID: "c2", Text: "brand new", PublishedAt: timePtr(published)},
				},
			},
			"v3": {
				Metadata: VideoMetadata{VideoID: "v3", Title: "Third"},
				Comments: map[string]Comment{
					"c9": {CommentID: "c9", Text: "also new"},
				},
			},
		},
	}

	merged, stats := MergeFromSource(existing, source, time.Now())
	if stats.NewVideos != 1 {
		t.Errorf("NewVideos = %d, want 1", stats.NewVideos)
	}
	if stats.NewComments != 2 {
		t.Errorf("NewComments = %d, want 2", stats.NewComments)
	}

	// Existing comment text is preserved, never overwritten from source.
	if got := merged.Videos["v1"].Comments["c1"].Text; got != existingComment.Text {
		t.Errorf("existing comment was overwritten: %q", got)
	}
	// Metadata is refreshed from the newer source.
	if merged.Videos["v1"].Metadata.Title != "First (updated)" {
		t.Errorf("video metadata not refreshed: %q", merged.Videos["v1"].Metadata.Title)
	}
	if merged.Metadata.Title != "Pars Today (renamed)" {
		t.Errorf("channel metadata not refreshed: %q", merged.Metadata.Title)
	}
	// Untouched videos survive.
	if _, ok := merged.Videos["v2"]; !ok {
		t.Error("existing video v2 lost during merge")
	}
	if merged.Videos["v3"].Comments["c9"].Text != "also new" {
		t.Error("new video's comments missing")
	}
}

func TestMergeIntoVideoWithNilComments(t *testing.T) {
	existing := &ChannelData{
		Videos: map[string]VideoData{
			"v1": {Metadata: VideoMetadata{VideoID: "v1"}},
		},
	}
	source := &ChannelData{
		Videos: map[string]VideoData{
			"v1": {
				Metadata: VideoMetadata{VideoID: "v1"},
				Comments: map[string]Comment{"c1": {CommentID: "c1", Text: "first ever"}},
			},
		},
	}

	merged, stats := MergeFromSource(existing, source, time.Now())
	if stats.NewComments != 1 {
		t.Errorf("NewComments = %d, want 1", stats.NewComments)
	}
	if merged.Videos["v1"].Comments["c1"].Text != "first ever" {
		t.Error("comment not added to video that previously had none")
	}
}
