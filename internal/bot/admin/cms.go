package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricbot/internal/bot"
	"github.com/sukalov/lyricbot/internal/bot/common"
	"github.com/sukalov/lyricbot/internal/config"
	"github.com/sukalov/lyricbot/internal/db"
	"github.com/sukalov/lyricbot/internal/lyrics"
	"github.com/sukalov/lyricbot/internal/state"
	"github.com/sukalov/lyricbot/internal/utils"
)

const maxSearchResults = 10

type SearchHandler struct {
	cfg         *config.Config
	userManager *state.StateManager
	service     *lyrics.Service

	mu             sync.Mutex
	awaitingSearch map[int64]bool
}

func NewSearchHandler(cfg *config.Config, userManager *state.StateManager, service *lyrics.Service) *SearchHandler {
	return &SearchHandler{
		cfg:            cfg,
		userManager:    userManager,
		service:        service,
		awaitingSearch: make(map[int64]bool),
	}
}

func (h *SearchHandler) findSongHandler(b *bot.Bot, update tgbotapi.Update) error {
	if !h.cfg.IsAdmin(update.Message.From.UserName) {
		return b.SendMessage(update.Message.Chat.ID, "вы не админ")
	}

	h.mu.Lock()
	h.awaitingSearch[update.Message.Chat.ID] = true
	h.mu.Unlock()

	return b.SendMessage(update.Message.Chat.ID, "write a song title or part of it")
}

// takeAwaiting reports whether the chat asked for a search, clearing the flag
func (h *SearchHandler) takeAwaiting(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	awaiting := h.awaitingSearch[chatID]
	delete(h.awaitingSearch, chatID)
	return awaiting
}

func (h *SearchHandler) messageHandler(b *bot.Bot, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.IsCommand() {
		return nil
	}

	if !h.takeAwaiting(update.Message.Chat.ID) {
		return b.SendMessage(update.Message.Chat.ID, "ничего не понятно. если вы пытаетесь найти песню, сначала нажмите /findsong")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := db.SearchSongs(ctx, update.Message.Text, maxSearchResults+1)
	if err != nil {
		return b.SendMessage(update.Message.Chat.ID, fmt.Sprintf("search failed: %v", err))
	}

	if len(results) == 0 {
		return b.SendMessage(update.Message.Chat.ID, "ничего не найдено")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, song := range results {
		if len(rows) >= maxSearchResults {
			break
		}
		label := utils.Truncate(db.FormatSongName(song), 60)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "show_song:"+song.ID),
		))
	}

	message := "найденные песни:"
	if len(results) > maxSearchResults {
		message += fmt.Sprintf("\n(показаны первые %d)", maxSearchResults)
	}

	return b.SendMessageWithButtons(update.Message.Chat.ID, message, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *SearchHandler) callbackHandler(b *bot.Bot, update tgbotapi.Update) error {
	query := update.CallbackQuery
	chatID := query.Message.Chat.ID
	if !h.cfg.IsAdmin(query.From.UserName) {
		return b.SendMessage(chatID, "вы не админ")
	}
	songID := bot.CallbackArg(query.Data)

	ctx := context.Background()
	song, err := db.FindSongByID(ctx, songID)
	if err != nil {
		if errors.Is(err, db.ErrSongNotFound) {
			return b.SendMessage(chatID, "песня не найдена")
		}
		return err
	}

	prefs := h.userManager.Get(chatID)
	prefs.LastLyrics = song.Lyrics
	prefs.LastSongID = song.ID

	return common.ShowLyrics(ctx, b, h.service, prefs)
}
