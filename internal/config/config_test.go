package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HF_API_TOKEN", "")
	path := filepath.Join(t.TempDir(), "nope.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Error("exists should be false for a missing file")
	}
	if resolved == "" {
		t.Error("resolved path should not be empty")
	}
	if cfg.Inference.BaseURL != defaultInferenceBaseURL {
		t.Errorf("BaseURL = %q, want default %q", cfg.Inference.BaseURL, defaultInferenceBaseURL)
	}
	if cfg.Analysis.MaxCommentChars != defaultMaxCommentChars {
		t.Errorf("MaxCommentChars = %d, want %d", cfg.Analysis.MaxCommentChars, defaultMaxCommentChars)
	}
	if !cfg.Journal.Enabled {
		t.Error("journal should be enabled by default")
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	path := writeConfig(t, `
[paths]
input_dir = "~/nazar-input"

[analysis]
comments_per_video = 25
`)

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("exists should be true")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home dir: %v", err)
	}
	if want := filepath.Join(home, "nazar-input"); cfg.Paths.InputDir != want {
		t.Errorf("InputDir = %q, want %q", cfg.Paths.InputDir, want)
	}
	if cfg.Analysis.CommentsPerVideo != 25 {
		t.Errorf("CommentsPerVideo = %d, want 25", cfg.Analysis.CommentsPerVideo)
	}
}

func TestLoadAPITokenEnvFallback(t *testing.T) {
	t.Setenv("HF_API_TOKEN", "hf_test_token")
	path := filepath.Join(t.TempDir(), "nope.toml")

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Inference.APIToken != "hf_test_token" {
		t.Errorf("APIToken = %q, want env fallback", cfg.Inference.APIToken)
	}
}

func TestLoadRejectsBlankModel(t *testing.T) {
	path := writeConfig(t, `
[inference]
irony_model = "   "
`)

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for blank model id")
	}
	if !strings.Contains(err.Error(), "inference.irony_model") {
		t.Errorf("error should name the offending key, got: %v", err)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	path := writeConfig(t, `
[inference]
base_url = "https://example.test/infer/"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Inference.BaseURL != "https://example.test/infer" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.Inference.BaseURL)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist")
	}
	if cfg.Inference.PersianSentimentModel != defaultPersianSentimentModel {
		t.Errorf("sample model = %q, want default", cfg.Inference.PersianSentimentModel)
	}
}
