package common

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricbot/internal/bot"
	"github.com/sukalov/lyricbot/internal/db"
	"github.com/sukalov/lyricbot/internal/lyrics"
	"github.com/sukalov/lyricbot/internal/state"
	"github.com/sukalov/lyricbot/internal/users"
)

const helpText = `send me generated lyrics and I will split them into sections.

the first line is the title. tags like [Verse 1], [style: rock] or [ad-lib] mark sections and annotations.

/tags - show or hide tags
/clean - lyrics only view
/copy - get the lyrics back as text
/import <amdm.ru link> - load lyrics from a page
/save [title] - save the last lyrics
/songs - your saved songs
/song <id> - open a saved song
/view - current view settings`

type CommonHandlers struct {
	userManager *state.StateManager
}

func GetCommandHandlers(userManager *state.StateManager) map[string]bot.HandlerFunc {
	handlers := newCommonHandlers(userManager)
	return map[string]bot.HandlerFunc{
		"help": handlers.helpHandler,
		"view": handlers.viewHandler,
	}
}

// GetMessageHandlers returns common message handlers
func GetMessageHandlers() []bot.HandlerFunc {
	return []bot.HandlerFunc{}
}

// GetCallbackHandlers returns common callback handlers
func GetCallbackHandlers() map[string]bot.HandlerFunc {
	return map[string]bot.HandlerFunc{}
}

func newCommonHandlers(userManager *state.StateManager) *CommonHandlers {
	return &CommonHandlers{
		userManager: userManager,
	}
}

func (h *CommonHandlers) helpHandler(b *bot.Bot, update tgbotapi.Update) error {
	return b.SendMessage(update.Message.Chat.ID, helpText)
}

func (h *CommonHandlers) viewHandler(b *bot.Bot, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID
	text := FormatPreferences(h.userManager.Get(chatID))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if user, err := db.GetUserByChatID(ctx, chatID); err == nil {
		text += fmt.Sprintf("\nsongs saved: %d", user.SongsSaved)
	}

	return b.SendMessage(chatID, text)
}

// ShowLyrics sends the chat's last lyrics split into sections. Text that
// yields no sections is sent back verbatim.
func ShowLyrics(ctx context.Context, b *bot.Bot, service *lyrics.Service, prefs users.Preferences) error {
	if !prefs.HasLyrics() {
		return b.SendMessage(prefs.ChatID, "no lyrics yet. send some text first")
	}

	secs := service.Sections(ctx, prefs.LastLyrics)
	if len(secs) == 0 {
		return b.SendChunks(prefs.ChatID, SplitMessages([]string{prefs.LastLyrics}, MessageLimit), false)
	}

	return b.SendChunks(prefs.ChatID, SplitMessages(FormatSections(secs, prefs), MessageLimit), true)
}
