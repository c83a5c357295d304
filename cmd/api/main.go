package main

import (
	"context"

	"github.com/joho/godotenv"

	"fitlink-backend/internal/config"
	"fitlink-backend/internal/db"
	"fitlink-backend/internal/logger"
	"fitlink-backend/internal/model"
	"fitlink-backend/internal/realtime"
	"fitlink-backend/internal/server"
	"fitlink-backend/internal/storage"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var bus realtime.Bus
	if cfg.RedisAddr != "" {
		rb, err := realtime.NewRedisBus(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			log.Warn("redis unavailable, falling back to in-process bus", "error", err)
		} else {
			bus = rb
		}
	}
	if bus == nil {
		bus = realtime.NewMemoryBus()
	}
	defer bus.Close()

	ctx := context.Background()

	var uploader storage.Uploader
	if cfg.StorageBucket != "" {
		up, err := storage.NewGCSUploader(ctx, cfg.StorageBucket)
		if err != nil {
			log.Warn("storage unavailable, uploads disabled", "error", err)
		} else {
			uploader = up
		}
	}

	srv := server.New(log, bus, uploader, cfg.FirebaseProjectID, gitSHA, buildTime)

	if err := srv.StartSync(ctx); err != nil {
		log.Warn("ledger sync not started", "error", err)
	}

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Info("starting server", "addr", addr)
		errCh <- srv.Start(addr)
	}()

	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Error("db connect failed, running without persistence", "error", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(
			&model.XPLedger{},
			&model.UserAchievement{},
			&model.Notification{},
			&model.Post{},
			&model.PostLike{},
			&model.PostComment{},
			&model.FriendRequest{},
			&model.Conversation{},
			&model.Message{},
			&model.Challenge{},
			&model.ChallengeParticipant{},
			&model.Event{},
			&model.EventRegistration{},
			&model.Place{},
			&model.Listing{},
			&model.Order{},
		); err != nil {
			log.Error("auto migrate failed", "error", err)
		}
		log.Info("database wired")
	}()

	if err := <-errCh; err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
