package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nazar/internal/fileutil"
)

// Source identifies a raw channel file in the input directory.
type Source struct {
	Key  string
	Path string
}

// ListSources returns the channel source files found in inputDir, sorted by
// channel key. A missing directory yields an empty list.
func ListSources(inputDir string) ([]Source, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	sources := make([]Source, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		key := strings.TrimSuffix(entry.Name(), ".json")
		sources = append(sources, Source{Key: key, Path: filepath.Join(inputDir, entry.Name())})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Key < sources[j].Key })
	return sources, nil
}

// LoadSource parses a raw channel source file.
func LoadSource(path string) (*ChannelData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	var channel ChannelData
	if err := json.Unmarshal(data, &channel); err != nil {
		return nil, fmt.Errorf("parse source file %s: %w", filepath.Base(path), err)
	}
	if channel.Videos == nil {
		channel.Videos = make(map[string]VideoData)
	}
	return &channel, nil
}

func channelFilePath(dataDir, channelKey string) string {
	return filepath.Join(dataDir, "channel_"+channelKey+".json")
}

// ListChannels returns the keys of canonical channel files present in
// dataDir, sorted. A missing directory yields an empty list.
func ListChannels(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "channel_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(name, "channel_"), ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

// Load reads the canonical channel file from dataDir. A missing file returns
// an error satisfying os.IsNotExist / errors.Is(err, fs.ErrNotExist).
func Load(dataDir, channelKey string) (*ChannelData, error) {
	data, err := os.ReadFile(channelFilePath(dataDir, channelKey))
	if err != nil {
		return nil, err
	}
	var channel ChannelData
	if err := json.Unmarshal(data, &channel); err != nil {
		return nil, fmt.Errorf("parse channel data for %q: %w", channelKey, err)
	}
	if channel.Videos == nil {
		channel.Videos = make(map[string]VideoData)
	}
	return &channel, nil
}

// Save writes the canonical channel file atomically so a crash mid-write
// leaves the previous file intact.
func Save(dataDir, channelKey string, channel *ChannelData) error {
	if err := fileutil.WriteJSONAtomic(channelFilePath(dataDir, channelKey), channel); err != nil {
		return fmt.Errorf("save channel data: %w", err)
	}
	return nil
}
