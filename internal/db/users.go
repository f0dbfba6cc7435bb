package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/sukalov/lyricbot/internal/utils/e"
)

type User struct {
	ChatID     int64
	Username   sql.NullString
	TgName     sql.NullString
	AddedAt    time.Time
	SongsSaved int
}

// RegisterUser inserts the chat's user unless it is already known
func RegisterUser(ctx context.Context, chatID int64, username, tgName string) (err error) {
	defer func() { err = e.WrapIfErr(fmt.Sprintf("can't register user %d", chatID), err) }()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM users WHERE chat_id = ?)`
	if err := Database.QueryRowContext(ctx, checkQuery, chatID).Scan(&exists); err != nil {
		return fmt.Errorf("error checking user existence: %w", err)
	}

	if exists {
		return nil
	}

	insertQuery := `
		INSERT INTO users (
			chat_id,
			username,
			tg_name,
			added_at,
			songs_saved
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err = Database.ExecContext(ctx, insertQuery,
		chatID,
		nullString(username),
		nullString(tgName),
		time.Now(),
		0,
	)
	if err != nil {
		return fmt.Errorf("failed to insert new user: %w", err)
	}

	log.Printf("new user registered: ID: %d, username: %s", chatID, username)
	return nil
}

func GetUserByChatID(ctx context.Context, chatID int64) (User, error) {
	if Database == nil {
		return User{}, fmt.Errorf("database is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user User
	query := `SELECT chat_id, username, tg_name, added_at, songs_saved FROM users WHERE chat_id = ?`
	err := Database.QueryRowContext(ctx, query, chatID).Scan(
		&user.ChatID, &user.Username, &user.TgName, &user.AddedAt, &user.SongsSaved)
	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user %d: %w", chatID, err)
	}
	return user, nil
}
