package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.View.ShowTags {
		t.Error("default ShowTags = false, want true")
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("default Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `admins: [sukalov, olakotr]
view:
  show_tags: false
  lyrics_only: true
cache:
  ttl: 2h
import:
  user_agent: test-agent
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.View.ShowTags || !cfg.View.LyricsOnly {
		t.Errorf("View = %+v, want show_tags=false lyrics_only=true", cfg.View)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache.TTL = %v, want 2h", cfg.Cache.TTL)
	}
	if cfg.Cache.MaxCostBytes != 16<<20 {
		t.Errorf("Cache.MaxCostBytes = %d, want default", cfg.Cache.MaxCostBytes)
	}
	if cfg.Import.Timeout != 60*time.Second {
		t.Errorf("Import.Timeout = %v, want default 60s", cfg.Import.Timeout)
	}
	if !cfg.IsAdmin("olakotr") || cfg.IsAdmin("stranger") {
		t.Errorf("IsAdmin mismatch for admins %v", cfg.Admins)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("admins: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Admins = []string{"motygapishet"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.IsAdmin("motygapishet") {
		t.Errorf("loaded admins = %v", loaded.Admins)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "/etc/lyricbot.yaml")
	if got := Path(); got != "/etc/lyricbot.yaml" {
		t.Errorf("Path() = %q, want %q", got, "/etc/lyricbot.yaml")
	}
}
