// db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

var (
	Database *sql.DB
	once     sync.Once
	initErr  error
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS songs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	lyrics TEXT NOT NULL,
	clean_lyrics TEXT,
	source TEXT,
	sections INTEGER NOT NULL DEFAULT 0,
	chat_id INTEGER,
	created_at TIMESTAMP NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS users (
	chat_id INTEGER PRIMARY KEY,
	username TEXT,
	tg_name TEXT,
	added_at TIMESTAMP NOT NULL,
	songs_saved INTEGER NOT NULL DEFAULT 0
)`,
}

// Init opens the libsql connection once and verifies it
func Init(databaseURL, authToken string) error {
	once.Do(func() {
		url := fmt.Sprintf("%s?authToken=%s", databaseURL, authToken)

		Database, initErr = sql.Open("libsql", url)
		if initErr != nil {
			initErr = fmt.Errorf("failed to open db: %w", initErr)
			return
		}

		Database.SetMaxOpenConns(25)
		Database.SetMaxIdleConns(25)
		Database.SetConnMaxLifetime(5 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if pingErr := Database.PingContext(ctx); pingErr != nil {
			initErr = fmt.Errorf("failed to ping database: %w", pingErr)
		}
	})

	return initErr
}

// Migrate creates the tables the bot needs
func Migrate(ctx context.Context) error {
	if Database == nil {
		return fmt.Errorf("database is not initialized")
	}
	for _, stmt := range schema {
		if _, err := Database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection safely
func Close() {
	if Database != nil {
		if err := Database.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
