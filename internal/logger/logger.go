package logger

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/sukalov/lyricbot/internal/utils"
	"github.com/sukalov/lyricbot/internal/utils/e"
)

var (
	ChannelID int64
	once      sync.Once
	mu        sync.RWMutex
	botClient BotClient
)

// BotClient is anything that can post a text message to a chat
type BotClient interface {
	SendMessage(chatID int64, text string) error
}

// Init reads LOG_CHANNEL_ID and starts forwarding logs through client.
// Until Init succeeds every log call is a no-op.
func Init(client BotClient) error {
	var initErr error
	once.Do(func() {
		env, err := utils.LoadEnv([]string{"LOG_CHANNEL_ID"})
		if err != nil {
			initErr = fmt.Errorf("failed to load LOG_CHANNEL_ID: %w", err)
			return
		}

		channelID, err := strconv.ParseInt(env["LOG_CHANNEL_ID"], 10, 64)
		if err != nil {
			initErr = fmt.Errorf("failed to parse LOG_CHANNEL_ID: %w", err)
			return
		}

		setClient(client, channelID)
	})

	return initErr
}

func setClient(client BotClient, channelID int64) {
	mu.Lock()
	defer mu.Unlock()
	botClient = client
	ChannelID = channelID
}

func Info(message string) {
	sendLog("ℹ️ INFO", message)
}

func Error(message string) {
	sendLog("❌ ERROR", message)
}

func Debug(message string) {
	sendLog("🔍 DEBUG", message)
}

func Success(message string) {
	sendLog("✅ SUCCESS", message)
}

func sendLog(prefix, message string) {
	mu.RLock()
	client, channelID := botClient, ChannelID
	mu.RUnlock()

	if client == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)

	go func() {
		if err := client.SendMessage(channelID, logMessage); err != nil {
			log.Printf("failed to send log to channel: %v\nlog was: %s", err, logMessage)
		}
	}()
}

// LogWithErr logs message as info, or as an error when err is set, and
// returns err wrapped with message.
func LogWithErr(message string, err error) error {
	if err == nil {
		Info(message)
		return nil
	}

	Error(fmt.Sprintf("%s\nError: %v", message, err))

	return e.Wrap(message, err)
}
