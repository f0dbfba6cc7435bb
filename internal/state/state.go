package state

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sukalov/lyricbot/internal/config"
	"github.com/sukalov/lyricbot/internal/users"
)

// Store persists preferences between restarts
type Store interface {
	LoadPreferences(ctx context.Context) (map[int64]users.Preferences, error)
	SetPreferences(ctx context.Context, prefs users.Preferences) error
}

type StateManager struct {
	mu       sync.RWMutex
	prefs    map[int64]users.Preferences
	store    Store
	defaults config.ViewConfig
}

func NewStateManager(store Store, defaults config.ViewConfig) *StateManager {
	return &StateManager{
		prefs:    map[int64]users.Preferences{},
		store:    store,
		defaults: defaults,
	}
}

// Init loads stored preferences into memory
func (sm *StateManager) Init(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	prefs, err := sm.store.LoadPreferences(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs == nil {
		prefs = map[int64]users.Preferences{}
	}
	sm.prefs = prefs
	return nil
}

// Get returns the chat's preferences, or the configured defaults for a new chat
func (sm *StateManager) Get(chatID int64) users.Preferences {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.getLocked(chatID)
}

func (sm *StateManager) getLocked(chatID int64) users.Preferences {
	if prefs, ok := sm.prefs[chatID]; ok {
		return prefs
	}
	return users.Preferences{
		ChatID:     chatID,
		ShowTags:   sm.defaults.ShowTags,
		LyricsOnly: sm.defaults.LyricsOnly,
	}
}

// update applies fn to the chat's preferences and writes them through
func (sm *StateManager) update(ctx context.Context, chatID int64, fn func(*users.Preferences)) (users.Preferences, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	prefs := sm.getLocked(chatID)
	fn(&prefs)
	prefs.UpdatedAt = time.Now()
	sm.prefs[chatID] = prefs

	if err := sm.store.SetPreferences(ctx, prefs); err != nil {
		log.Printf("error happened while saving preferences to redis: %s", err)
		return prefs, err
	}
	return prefs, nil
}

func (sm *StateManager) ToggleTags(ctx context.Context, chatID int64) (users.Preferences, error) {
	return sm.update(ctx, chatID, func(p *users.Preferences) {
		p.ShowTags = !p.ShowTags
	})
}

func (sm *StateManager) ToggleLyricsOnly(ctx context.Context, chatID int64) (users.Preferences, error) {
	return sm.update(ctx, chatID, func(p *users.Preferences) {
		p.LyricsOnly = !p.LyricsOnly
	})
}

// SetLyrics remembers the last lyrics a chat worked with
func (sm *StateManager) SetLyrics(ctx context.Context, chatID int64, username, lyrics, songID string) (users.Preferences, error) {
	return sm.update(ctx, chatID, func(p *users.Preferences) {
		p.Username = username
		p.LastLyrics = lyrics
		p.LastSongID = songID
	})
}

// Count returns how many chats have stored preferences
func (sm *StateManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.prefs)
}
