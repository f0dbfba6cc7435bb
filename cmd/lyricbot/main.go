package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sukalov/lyricbot/internal/bot"
	"github.com/sukalov/lyricbot/internal/bot/admin"
	"github.com/sukalov/lyricbot/internal/bot/client"
	"github.com/sukalov/lyricbot/internal/cache"
	"github.com/sukalov/lyricbot/internal/config"
	"github.com/sukalov/lyricbot/internal/db"
	"github.com/sukalov/lyricbot/internal/logger"
	"github.com/sukalov/lyricbot/internal/lyrics"
	"github.com/sukalov/lyricbot/internal/lyrics/parsers/amdm"
	"github.com/sukalov/lyricbot/internal/redis"
	"github.com/sukalov/lyricbot/internal/state"
	"github.com/sukalov/lyricbot/internal/utils"
)

func main() {
	env, err := utils.LoadEnv([]string{"BOT_TOKEN", "ADMIN_BOT_TOKEN", "TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN"})
	if err != nil {
		log.Fatalf("required env missing: %v", err)
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.Init(env["TURSO_DATABASE_URL"], env["TURSO_AUTH_TOKEN"]); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisManager, err := redis.NewDBManager()
	if err != nil {
		cancel()
		log.Fatalf("failed to create redis client: %v", err)
	}
	defer redisManager.Close()

	if err := redisManager.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("failed to reach redis: %v", err)
	}

	memory, err := cache.NewMemory(cfg.Cache.MaxCostBytes)
	if err != nil {
		cancel()
		log.Fatalf("failed to create memory cache: %v", err)
	}
	defer memory.Close()
	sectionCache := cache.NewLayered(memory, redisManager, cfg.Cache.TTL)

	parser := amdm.NewParser(amdm.NewClient(cfg.Import.Timeout, cfg.Import.UserAgent))
	service := lyrics.NewService(parser, sectionCache)

	userManager := state.NewStateManager(redisManager, cfg.View)
	if err := userManager.Init(ctx); err != nil {
		cancel()
		log.Fatalf("failed to load preferences: %v", err)
	}
	cancel()

	clientBot, err := bot.New("client", env["BOT_TOKEN"])
	if err != nil {
		log.Fatalf("failed to create client bot: %v", err)
	}

	adminBot, err := bot.New("admin", env["ADMIN_BOT_TOKEN"])
	if err != nil {
		log.Fatalf("failed to create admin bot: %v", err)
	}

	if err := logger.Init(adminBot); err != nil {
		log.Printf("channel logging disabled: %v", err)
	}

	client.SetupHandlers(clientBot, userManager, service, cfg)
	admin.SetupHandlers(adminBot, userManager, service, sectionCache, cfg)

	logger.Success(fmt.Sprintf("lyricbot started\nchats with preferences: %d", userManager.Count()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down bots...")
	clientBot.Stop()
	adminBot.Stop()
}
