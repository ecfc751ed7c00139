package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"nazar/internal/config"
	"nazar/internal/dataset"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfg := &cfgVal

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	if configPath != "" {
		args = append(args, "--config", configPath)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func writeSourceFile(t *testing.T, env *cliTestEnv, channelKey string, channel *dataset.ChannelData) {
	t.Helper()
	data, err := json.MarshalIndent(channel, "", "  ")
	if err != nil {
		t.Fatalf("marshal source: %v", err)
	}
	path := filepath.Join(env.cfg.Paths.InputDir, channelKey+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
}

func sampleSource() *dataset.ChannelData {
	published := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &dataset.ChannelData{
		Metadata: dataset.ChannelMetadata{ChannelID: "UCtest", Title: "Test Channel"},
		Videos: map[string]dataset.VideoData{
			"vid1": {
				Metadata: dataset.VideoMetadata{VideoID: "vid1", Title: "First", PublishedAt: &published},
				Comments: map[string]dataset.Comment{
					"c1": {CommentID: "c1", Text: "چه ویدیوی خوبی", PublishedAt: &published},
					"c2": {CommentID: "c2", Text: "ممنون", PublishedAt: &published},
				},
			},
		},
	}
}
