package main

import (
	"os"
	"path/filepath"
	"testing"

	"nazar/internal/dataset"
)

func TestConfigInit(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// Second init without --overwrite refuses
	if _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestChannelsEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"channels"}, env.configPath)
	if err != nil {
		t.Fatalf("channels: %v", err)
	}
	requireContains(t, out, "No channels found")
}

func TestUpdateThenChannels(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "testchan", sampleSource())

	out, err := runCLI(t, []string{"update", "testchan"}, env.configPath)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	requireContains(t, out, "2 new comments")
	requireContains(t, out, "1 new video")

	if _, err := dataset.Load(env.cfg.Paths.DataDir, "testchan"); err != nil {
		t.Fatalf("canonical file not written: %v", err)
	}

	out, err = runCLI(t, []string{"channels"}, env.configPath)
	if err != nil {
		t.Fatalf("channels: %v", err)
	}
	requireContains(t, out, "testchan")
}

func TestUpdateIsIncremental(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "testchan", sampleSource())

	if _, err := runCLI(t, []string{"update", "testchan"}, env.configPath); err != nil {
		t.Fatalf("first update: %v", err)
	}
	out, err := runCLI(t, []string{"update", "testchan"}, env.configPath)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	requireContains(t, out, "0 new comments")
}

func TestUpdateMissingSource(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, []string{"update", "nosuch"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing source file")
	}
	requireContains(t, err.Error(), "no source file")
}

func TestStatsWithoutData(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, []string{"stats", "nosuch"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown channel")
	}
	requireContains(t, err.Error(), "nazar update")
}

func TestStatsBeforeAnalysis(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "testchan", sampleSource())
	if _, err := runCLI(t, []string{"update", "testchan"}, env.configPath); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := runCLI(t, []string{"stats", "testchan"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "0 analyzed")
	requireContains(t, out, "No analyzed comments yet")
}

func TestStatsJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSourceFile(t, env, "testchan", sampleSource())
	if _, err := runCLI(t, []string{"update", "testchan"}, env.configPath); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := runCLI(t, []string{"stats", "testchan", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("stats --json: %v", err)
	}
	requireContains(t, out, `"channel": "testchan"`)
	requireContains(t, out, `"comments": 2`)
}

func TestSessionsEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"sessions"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	requireContains(t, out, "No sessions recorded yet")
}

func TestAnalyzeWithoutData(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, []string{"analyze", "nosuch"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown channel")
	}
	requireContains(t, err.Error(), "nazar update")
}
