package state

import (
	"context"
	"errors"
	"testing"

	"github.com/sukalov/lyricbot/internal/config"
	"github.com/sukalov/lyricbot/internal/users"
)

type fakeStore struct {
	saved   map[int64]users.Preferences
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[int64]users.Preferences{}}
}

func (f *fakeStore) LoadPreferences(context.Context) (map[int64]users.Preferences, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := map[int64]users.Preferences{}
	for k, v := range f.saved {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) SetPreferences(_ context.Context, prefs users.Preferences) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[prefs.ChatID] = prefs
	return nil
}

func TestGetReturnsDefaults(t *testing.T) {
	sm := NewStateManager(newFakeStore(), config.ViewConfig{ShowTags: true})

	prefs := sm.Get(10)
	if prefs.ChatID != 10 || !prefs.ShowTags || prefs.LyricsOnly {
		t.Errorf("Get() = %+v, want defaults for chat 10", prefs)
	}
	if sm.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after a read", sm.Count())
	}
}

func TestToggles(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	sm := NewStateManager(store, config.ViewConfig{ShowTags: true})

	prefs, err := sm.ToggleTags(ctx, 1)
	if err != nil {
		t.Fatalf("ToggleTags() error = %v", err)
	}
	if prefs.ShowTags {
		t.Error("ToggleTags() left ShowTags on")
	}

	prefs, err = sm.ToggleLyricsOnly(ctx, 1)
	if err != nil {
		t.Fatalf("ToggleLyricsOnly() error = %v", err)
	}
	if !prefs.LyricsOnly || prefs.ShowTags {
		t.Errorf("after toggles prefs = %+v", prefs)
	}

	if saved := store.saved[1]; saved.LyricsOnly != true || saved.UpdatedAt.IsZero() {
		t.Errorf("store has %+v, want written-through preferences", saved)
	}
}

func TestSetLyricsAndInit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	sm := NewStateManager(store, config.ViewConfig{})

	if _, err := sm.SetLyrics(ctx, 7, "alice", "Title\n[Verse]\nx", "song-1"); err != nil {
		t.Fatalf("SetLyrics() error = %v", err)
	}

	restarted := NewStateManager(store, config.ViewConfig{})
	if err := restarted.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	prefs := restarted.Get(7)
	if !prefs.HasLyrics() || prefs.LastSongID != "song-1" || prefs.Username != "alice" {
		t.Errorf("restored prefs = %+v", prefs)
	}
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.saveErr = errors.New("redis down")
	sm := NewStateManager(store, config.ViewConfig{ShowTags: true})

	prefs, err := sm.ToggleTags(ctx, 3)
	if err == nil {
		t.Fatal("ToggleTags() expected store error")
	}
	if prefs.ShowTags {
		t.Error("in-memory toggle should still apply when the store fails")
	}

	store.loadErr = errors.New("redis down")
	if err := sm.Init(ctx); err == nil {
		t.Error("Init() expected load error")
	}
}
