package users

import "time"

// Preferences is the per-chat view state of the bot
type Preferences struct {
	ChatID     int64     `json:"chat_id"`
	Username   string    `json:"username"`
	ShowTags   bool      `json:"show_tags"`
	LyricsOnly bool      `json:"lyrics_only"`
	LastLyrics string    `json:"last_lyrics"`
	LastSongID string    `json:"last_song_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasLyrics reports whether the chat has sent or loaded lyrics yet
func (p Preferences) HasLyrics() bool {
	return p.LastLyrics != ""
}
