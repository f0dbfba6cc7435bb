package bot

import (
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandlerFunc handles one update for a bot
type HandlerFunc func(b *Bot, update tgbotapi.Update) error

// Bot represents a configurable Telegram bot
type Bot struct {
	Client     *tgbotapi.BotAPI
	updateChan tgbotapi.UpdatesChannel
	stopChan   chan struct{}
	name       string
	mu         sync.Mutex
	stopped    bool
}

// New creates a new bot instance
func New(name, token string) (*Bot, error) {
	botClient, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updateChan := botClient.GetUpdatesChan(updateConfig)

	return &Bot{
		Client:     botClient,
		updateChan: updateChan,
		stopChan:   make(chan struct{}),
		name:       name,
	}, nil
}

// Start begins processing updates with custom handlers
func (b *Bot) Start(
	commandHandlers map[string]HandlerFunc,
	messageHandlers []HandlerFunc,
	callbackHandlers map[string]HandlerFunc,
) {
	log.Printf("[%s] authorized on account %s", b.name, b.Client.Self.UserName)

	for {
		select {
		case update, ok := <-b.updateChan:
			if !ok {
				return
			}
			go b.processUpdate(update, commandHandlers, messageHandlers, callbackHandlers)
		case <-b.stopChan:
			return
		}
	}
}

// processUpdate handles incoming updates with custom handlers
func (b *Bot) processUpdate(
	update tgbotapi.Update,
	commandHandlers map[string]HandlerFunc,
	messageHandlers []HandlerFunc,
	callbackHandlers map[string]HandlerFunc,
) {
	if update.Message != nil && update.Message.IsCommand() {
		if handler, exists := commandHandlers[update.Message.Command()]; exists {
			if err := handler(b, update); err != nil {
				log.Printf("[%s] command handler error: %v", b.name, err)
			}
			return
		}
	}

	if update.CallbackQuery != nil {
		b.AnswerCallback(update.CallbackQuery.ID)
		if handler, exists := callbackHandler(callbackHandlers, update.CallbackQuery.Data); exists {
			if err := handler(b, update); err != nil {
				log.Printf("[%s] callback handler error: %v", b.name, err)
			}
		}
		return
	}

	for _, handler := range messageHandlers {
		if err := handler(b, update); err != nil {
			log.Printf("[%s] message handler error: %v", b.name, err)
		}
	}
}

// callbackHandler looks up data exactly, then by its "name:" prefix so
// buttons can carry an argument after the colon
func callbackHandler(handlers map[string]HandlerFunc, data string) (HandlerFunc, bool) {
	if handler, ok := handlers[data]; ok {
		return handler, true
	}
	if idx := strings.IndexByte(data, ':'); idx >= 0 {
		handler, ok := handlers[data[:idx+1]]
		return handler, ok
	}
	return nil, false
}

// CallbackArg returns the part of callback data after the first colon
func CallbackArg(data string) string {
	if idx := strings.IndexByte(data, ':'); idx >= 0 {
		return data[idx+1:]
	}
	return ""
}

// Stop halts the bot
func (b *Bot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.stopped = true
	b.Client.StopReceivingUpdates()
	close(b.stopChan)
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendMessageWithMarkdown(chatID int64, text string, disableLinks bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = disableLinks
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendMessageWithButtons(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.Client.Send(msg)
	return err
}

// SendChunks sends text split into messages under Telegram's size limit
func (b *Bot) SendChunks(chatID int64, chunks []string, markdown bool) error {
	for _, chunk := range chunks {
		var err error
		if markdown {
			err = b.SendMessageWithMarkdown(chatID, chunk, true)
		} else {
			err = b.SendMessage(chatID, chunk)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) AnswerCallback(callbackID string) {
	if _, err := b.Client.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		log.Printf("[%s] failed to answer callback: %v", b.name, err)
	}
}
