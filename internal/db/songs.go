package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Song struct {
	ID          string
	Title       string
	Lyrics      string
	CleanLyrics sql.NullString
	Source      sql.NullString
	Sections    int
	ChatID      sql.NullInt64
	CreatedAt   time.Time
}

// NewSong is what a caller knows about a song before it is stored
type NewSong struct {
	Title       string
	Lyrics      string
	CleanLyrics string
	Source      string
	Sections    int
	ChatID      int64
}

var ErrSongNotFound = errors.New("song not found")

// SaveSong stores a song under a fresh id and bumps the owner's counter
func SaveSong(ctx context.Context, in NewSong) (Song, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	song := Song{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Lyrics:      in.Lyrics,
		CleanLyrics: nullString(in.CleanLyrics),
		Source:      nullString(in.Source),
		Sections:    in.Sections,
		ChatID:      sql.NullInt64{Int64: in.ChatID, Valid: in.ChatID != 0},
		CreatedAt:   time.Now(),
	}

	query := `INSERT INTO songs (id, title, lyrics, clean_lyrics, source, sections, chat_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := Database.ExecContext(ctx, query,
		song.ID, song.Title, song.Lyrics, song.CleanLyrics, song.Source, song.Sections, song.ChatID, song.CreatedAt)
	if err != nil {
		return Song{}, fmt.Errorf("failed to insert song: %w", err)
	}

	if song.ChatID.Valid {
		if _, err := Database.ExecContext(ctx, `UPDATE users SET songs_saved = songs_saved + 1 WHERE chat_id = ?`, in.ChatID); err != nil {
			return song, fmt.Errorf("failed to increment songs_saved: %w", err)
		}
	}

	return song, nil
}

func FindSongByID(ctx context.Context, id string) (Song, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `SELECT id, title, lyrics, clean_lyrics, source, sections, chat_id, created_at FROM songs WHERE id = ?`
	var song Song
	err := Database.QueryRowContext(ctx, query, id).Scan(
		&song.ID, &song.Title, &song.Lyrics, &song.CleanLyrics, &song.Source, &song.Sections, &song.ChatID, &song.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, fmt.Errorf("failed to query song %s: %w", id, err)
	}
	return song, nil
}

// ListSongs returns the newest songs first. chatID 0 lists every chat's songs.
func ListSongs(ctx context.Context, chatID int64, limit int) ([]Song, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `SELECT id, title, lyrics, clean_lyrics, source, sections, chat_id, created_at FROM songs`
	args := []any{}
	if chatID != 0 {
		query += ` WHERE chat_id = ?`
		args = append(args, chatID)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Lyrics, &song.CleanLyrics, &song.Source, &song.Sections, &song.ChatID, &song.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}

	return songs, nil
}

func FormatSongName(song Song) string {
	var parts []string
	parts = append(parts, strings.TrimSpace(song.Title))
	if song.Sections > 0 {
		parts = append(parts, fmt.Sprintf("(%d sections)", song.Sections))
	}
	return strings.Join(parts, " ")
}

// TitleFromLyrics returns the first non-empty line, the one the parser drops
func TitleFromLyrics(lyrics string) string {
	for _, line := range strings.Split(lyrics, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "untitled"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// SearchSongs finds songs whose title contains query, case-insensitively
func SearchSongs(ctx context.Context, query string, limit int) ([]Song, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := Database.QueryContext(ctx,
		`SELECT id, title, lyrics, clean_lyrics, source, sections, chat_id, created_at
		FROM songs WHERE lower(title) LIKE ? ORDER BY created_at DESC LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Lyrics, &song.CleanLyrics, &song.Source, &song.Sections, &song.ChatID, &song.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}
