// Package bottest runs bots against a fake Telegram Bot API server.
package bottest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricbot/internal/bot"
)

// Sent is one sendMessage call the server received
type Sent struct {
	ChatID    int64
	Text      string
	ParseMode string
}

// Server answers getMe and sendMessage and records what was sent
type Server struct {
	mu       sync.Mutex
	sent     []Sent
	failures int
}

// New starts a server and returns it with a bot pointed at it. The bot does
// not poll for updates, handlers are called directly.
func New(t *testing.T) (*Server, *bot.Bot) {
	t.Helper()

	s := &Server{}
	ts := httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(ts.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", ts.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("NewBotAPIWithAPIEndpoint() error = %v", err)
	}

	return s, &bot.Bot{Client: api}
}

// FailNext makes the next n sendMessage calls fail the way Telegram rejects
// badly formatted text
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}

// Sent returns the messages accepted so far
func (s *Server) Sent() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sent(nil), s.sent...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"lyricbot","username":"lyricbot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		s.sendMessage(w, r)
	default:
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failures > 0 {
		s.failures--
		fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`)
		return
	}

	chatID, _ := strconv.ParseInt(r.FormValue("chat_id"), 10, 64)
	s.sent = append(s.sent, Sent{
		ChatID:    chatID,
		Text:      r.FormValue("text"),
		ParseMode: r.FormValue("parse_mode"),
	})
	fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d,"date":0,"chat":{"id":%d,"type":"private"}}}`, len(s.sent), chatID)
}
