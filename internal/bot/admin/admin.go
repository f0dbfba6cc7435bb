package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricbot/internal/bot"
	"github.com/sukalov/lyricbot/internal/bot/common"
	"github.com/sukalov/lyricbot/internal/config"
	"github.com/sukalov/lyricbot/internal/db"
	"github.com/sukalov/lyricbot/internal/logger"
	"github.com/sukalov/lyricbot/internal/lyrics"
	"github.com/sukalov/lyricbot/internal/state"
)

// Clearer empties the sections cache
type Clearer interface {
	Clear(ctx context.Context) error
}

type AdminHandlers struct {
	userManager *state.StateManager
	cache       Clearer
	cfg         *config.Config

	mu              sync.Mutex
	clearInProgress bool
}

func NewAdminHandlers(userManager *state.StateManager, cache Clearer, cfg *config.Config) *AdminHandlers {
	return &AdminHandlers{
		userManager: userManager,
		cache:       cache,
		cfg:         cfg,
	}
}

func (h *AdminHandlers) isAdmin(username string) bool {
	return h.cfg.IsAdmin(username)
}

func (h *AdminHandlers) clearCacheHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message

	if !h.isAdmin(message.From.UserName) {
		return b.SendMessage(message.Chat.ID, "вы не админ")
	}

	h.mu.Lock()
	h.clearInProgress = true
	h.mu.Unlock()

	return b.SendMessageWithButtons(message.Chat.ID, "all cached sections will be dropped. sure?",
		tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("drop", "confirm_clear_cache"),
				tgbotapi.NewInlineKeyboardButtonData("cancel", "abort_clear_cache"),
			),
		),
	)
}

// takeClear consumes a pending clear request
func (h *AdminHandlers) takeClear() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	pending := h.clearInProgress
	h.clearInProgress = false
	return pending
}

func (h *AdminHandlers) confirmHandler(b *bot.Bot, update tgbotapi.Update) error {
	chatID := update.CallbackQuery.Message.Chat.ID
	if !h.isAdmin(update.CallbackQuery.From.UserName) {
		return b.SendMessage(chatID, "вы не админ")
	}
	if !h.takeClear() {
		return b.SendMessage(chatID, "кнопка уже не работает")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.cache.Clear(ctx); err != nil {
		logger.Error(fmt.Sprintf("confirmHandler: cache clear failed\nError: %v", err))
		return b.SendMessage(chatID, fmt.Sprintf("cache clear failed: %v", err))
	}
	logger.Info(fmt.Sprintf("sections cache cleared by @%s", update.CallbackQuery.From.UserName))
	return b.SendMessage(chatID, "cache cleared")
}

func (h *AdminHandlers) abortHandler(b *bot.Bot, update tgbotapi.Update) error {
	chatID := update.CallbackQuery.Message.Chat.ID
	if !h.isAdmin(update.CallbackQuery.From.UserName) {
		return b.SendMessage(chatID, "вы не админ")
	}
	if h.takeClear() {
		return b.SendMessage(chatID, "ок. отменили")
	}
	return b.SendMessage(chatID, "кнопка уже не работает")
}

func (h *AdminHandlers) statsHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if !h.isAdmin(message.From.UserName) {
		return b.SendMessage(message.Chat.ID, "вы не админ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	songs, err := db.ListSongs(ctx, 0, 5)
	if err != nil {
		return b.SendMessage(message.Chat.ID, fmt.Sprintf("failed to load songs: %v", err))
	}

	text := fmt.Sprintf("chats with preferences: %d\n\n%s", h.userManager.Count(), common.FormatSongList(songs))
	return b.SendMessage(message.Chat.ID, text)
}

func SetupHandlers(adminBot *bot.Bot, userManager *state.StateManager, service *lyrics.Service, cache Clearer, cfg *config.Config) {
	handlers := NewAdminHandlers(userManager, cache, cfg)
	search := NewSearchHandler(cfg, userManager, service)

	commandHandlers := common.GetCommandHandlers(userManager)
	commandHandlers["clear_cache"] = handlers.clearCacheHandler
	commandHandlers["stats"] = handlers.statsHandler
	commandHandlers["findsong"] = search.findSongHandler

	callbackHandlers := common.GetCallbackHandlers()
	callbackHandlers["abort_clear_cache"] = handlers.abortHandler
	callbackHandlers["confirm_clear_cache"] = handlers.confirmHandler
	callbackHandlers["show_song:"] = search.callbackHandler

	messageHandlers := []bot.HandlerFunc{search.messageHandler}

	go adminBot.Start(commandHandlers, messageHandlers, callbackHandlers)
}
