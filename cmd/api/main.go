package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/monooki-app/monooki-backend/internal/config"
	"github.com/monooki-app/monooki-backend/internal/db"
	"github.com/monooki-app/monooki-backend/internal/logger"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/server"
	"github.com/monooki-app/monooki-backend/internal/storage"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Dev())

	conn, err := db.Connect(cfg)
	if err != nil {
		slog.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := conn.AutoMigrate(
		&model.Item{},
		&model.Category{},
		&model.Location{},
		&model.Author{},
		&model.PositionSchema{},
		&model.Position{},
		&model.Content{},
		&model.StockHistory{},
		&model.ItemWhitelist{},
		&model.UploadFile{},
		&model.AccountDeletion{},
	); err != nil {
		slog.Error("auto migrate failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := storage.NewGCS(ctx, cfg.StorageBucket)
	if err != nil {
		slog.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProjectID)
	if err != nil {
		slog.Error("firebase auth init failed", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, conn, store, authMw, gitSHA, buildTime)

	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr, "env", cfg.Env)
	if err := srv.Start(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
