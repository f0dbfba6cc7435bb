package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricbot/internal/bot"
	"github.com/sukalov/lyricbot/internal/bot/common"
	"github.com/sukalov/lyricbot/internal/config"
	"github.com/sukalov/lyricbot/internal/db"
	"github.com/sukalov/lyricbot/internal/logger"
	"github.com/sukalov/lyricbot/internal/lyrics"
	"github.com/sukalov/lyricbot/internal/lyrics/sections"
	"github.com/sukalov/lyricbot/internal/state"
	"github.com/sukalov/lyricbot/internal/utils"
)

const songsPageSize = 10

type ClientHandlers struct {
	userManager *state.StateManager
	service     *lyrics.Service
	cfg         *config.Config
}

func NewClientHandlers(userManager *state.StateManager, service *lyrics.Service, cfg *config.Config) *ClientHandlers {
	return &ClientHandlers{
		userManager: userManager,
		service:     service,
		cfg:         cfg,
	}
}

func (h *ClientHandlers) startHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	ctx := context.Background()

	tgName := strings.TrimSpace(message.From.FirstName + " " + message.From.LastName)
	if err := db.RegisterUser(ctx, message.Chat.ID, message.From.UserName, tgName); err != nil {
		log.Printf("error registering user: %v", err)
	}

	return b.SendMessage(message.Chat.ID, "привет! send me generated lyrics and I will split them into sections.\n\n/help for the commands")
}

func (h *ClientHandlers) tagsHandler(b *bot.Bot, update tgbotapi.Update) error {
	ctx := context.Background()
	prefs, err := h.userManager.ToggleTags(ctx, update.Message.Chat.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("tagsHandler: failed to save preferences for chat %d\nError: %v", update.Message.Chat.ID, err))
	}

	if err := b.SendMessage(update.Message.Chat.ID, common.FormatPreferences(prefs)); err != nil {
		return err
	}
	if !prefs.HasLyrics() {
		return nil
	}
	return common.ShowLyrics(ctx, b, h.service, prefs)
}

func (h *ClientHandlers) cleanHandler(b *bot.Bot, update tgbotapi.Update) error {
	ctx := context.Background()
	prefs, err := h.userManager.ToggleLyricsOnly(ctx, update.Message.Chat.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("cleanHandler: failed to save preferences for chat %d\nError: %v", update.Message.Chat.ID, err))
	}

	if err := b.SendMessage(update.Message.Chat.ID, common.FormatPreferences(prefs)); err != nil {
		return err
	}
	if !prefs.HasLyrics() {
		return nil
	}
	return common.ShowLyrics(ctx, b, h.service, prefs)
}

// copyHandler sends the reconstructed lyrics as plain text, ready to copy
func (h *ClientHandlers) copyHandler(b *bot.Bot, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID
	prefs := h.userManager.Get(chatID)
	if !prefs.HasLyrics() {
		return b.SendMessage(chatID, "no lyrics yet. send some text first")
	}

	ctx := context.Background()
	secs := h.service.Sections(ctx, prefs.LastLyrics)

	text := prefs.LastLyrics
	if len(secs) > 0 {
		text = h.service.Copy(secs, prefs.ShowTags)
	}

	if err := b.SendChunks(chatID, common.SplitMessages([]string{text}, common.MessageLimit), false); err != nil {
		logger.Error(fmt.Sprintf("copyHandler: failed to send lyrics to chat %d\nError: %v", chatID, err))
		return b.SendMessage(chatID, "failed to copy lyrics, try again")
	}
	return nil
}

func (h *ClientHandlers) importHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	url := strings.TrimSpace(message.CommandArguments())
	if url == "" {
		return b.SendMessage(message.Chat.ID, "usage: /import <amdm.ru link>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.Import.Timeout)
	defer cancel()

	result, err := h.service.ExtractLyrics(ctx, url)
	if err != nil {
		return b.SendMessage(message.Chat.ID, fmt.Sprintf("could not import lyrics: %v", err))
	}

	prefs, err := h.userManager.SetLyrics(ctx, message.Chat.ID, message.From.UserName, result.Text, "")
	if err != nil {
		logger.Error(fmt.Sprintf("importHandler: failed to save preferences for chat %d\nError: %v", message.Chat.ID, err))
	}

	return common.ShowLyrics(ctx, b, h.service, prefs)
}

func (h *ClientHandlers) saveHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	prefs := h.userManager.Get(message.Chat.ID)
	if !prefs.HasLyrics() {
		return b.SendMessage(message.Chat.ID, "nothing to save. send lyrics first")
	}

	ctx := context.Background()
	secs := h.service.Sections(ctx, prefs.LastLyrics)

	title := strings.TrimSpace(message.CommandArguments())
	if title == "" {
		title = db.TitleFromLyrics(prefs.LastLyrics)
	}

	song, err := db.SaveSong(ctx, db.NewSong{
		Title:       utils.Truncate(title, 200),
		Lyrics:      prefs.LastLyrics,
		CleanLyrics: sections.Clean(secs),
		Source:      "telegram",
		Sections:    len(secs),
		ChatID:      message.Chat.ID,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("saveHandler: failed to save song for chat %d\nError: %v", message.Chat.ID, err))
		if song.ID == "" {
			return b.SendMessage(message.Chat.ID, "failed to save the song")
		}
	}

	if _, err := h.userManager.SetLyrics(ctx, message.Chat.ID, message.From.UserName, prefs.LastLyrics, song.ID); err != nil {
		logger.Error(fmt.Sprintf("saveHandler: failed to save preferences for chat %d\nError: %v", message.Chat.ID, err))
	}

	return b.SendMessage(message.Chat.ID, fmt.Sprintf("saved \"%s\"\nopen it later with /song %s", song.Title, song.ID))
}

func (h *ClientHandlers) songHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		return b.SendMessage(message.Chat.ID, "usage: /song <id>")
	}

	ctx := context.Background()
	song, err := db.FindSongByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrSongNotFound) {
			return b.SendMessage(message.Chat.ID, "no song with this id")
		}
		return logger.LogWithErr(fmt.Sprintf("songHandler: failed to load song %s", id), err)
	}

	prefs, err := h.userManager.SetLyrics(ctx, message.Chat.ID, message.From.UserName, song.Lyrics, song.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("songHandler: failed to save preferences for chat %d\nError: %v", message.Chat.ID, err))
	}

	return common.ShowLyrics(ctx, b, h.service, prefs)
}

func (h *ClientHandlers) songsHandler(b *bot.Bot, update tgbotapi.Update) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	songs, err := db.ListSongs(ctx, update.Message.Chat.ID, songsPageSize)
	if err != nil {
		logger.Error(fmt.Sprintf("songsHandler: failed to list songs for chat %d\nError: %v", update.Message.Chat.ID, err))
		return b.SendMessage(update.Message.Chat.ID, "failed to load your songs")
	}

	return b.SendMessage(update.Message.Chat.ID, common.FormatSongList(songs))
}

// lyricsHandler treats any plain text message as lyrics
func (h *ClientHandlers) lyricsHandler(b *bot.Bot, update tgbotapi.Update) error {
	message := update.Message
	if message == nil || message.Text == "" || message.IsCommand() {
		return nil
	}

	ctx := context.Background()
	prefs, err := h.userManager.SetLyrics(ctx, message.Chat.ID, message.From.UserName, message.Text, "")
	if err != nil {
		logger.Error(fmt.Sprintf("lyricsHandler: failed to save preferences for chat %d\nError: %v", message.Chat.ID, err))
	}

	return common.ShowLyrics(ctx, b, h.service, prefs)
}

func randomMessageHandler(b *bot.Bot, update tgbotapi.Update) error {
	if update.Message == nil || !update.Message.IsCommand() {
		return nil
	}
	return b.SendMessage(update.Message.Chat.ID, "этого я не понимаю...\n\n/help")
}

func SetupHandlers(clientBot *bot.Bot, userManager *state.StateManager, service *lyrics.Service, cfg *config.Config) {
	handlers := NewClientHandlers(userManager, service, cfg)

	messageHandlers := append(common.GetMessageHandlers(), handlers.lyricsHandler, randomMessageHandler)

	commandHandlers := common.GetCommandHandlers(userManager)
	commandHandlers["start"] = handlers.startHandler
	commandHandlers["tags"] = handlers.tagsHandler
	commandHandlers["clean"] = handlers.cleanHandler
	commandHandlers["copy"] = handlers.copyHandler
	commandHandlers["import"] = handlers.importHandler
	commandHandlers["save"] = handlers.saveHandler
	commandHandlers["song"] = handlers.songHandler
	commandHandlers["songs"] = handlers.songsHandler

	go clientBot.Start(
		commandHandlers,
		messageHandlers,
		common.GetCallbackHandlers(),
	)
}
