package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lianhua/qinna-quiz/internal/app"
	"github.com/lianhua/qinna-quiz/internal/config"
	"github.com/lianhua/qinna-quiz/internal/tui"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		// A missing .env is normal for the terminal quiz; stay quiet.
		_ = godotenv.Load("configs/.env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The terminal belongs to the UI, so logs only go to LOG_FILE.
	logger, logOut, err := app.NewLogger(cfg, io.Discard)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logOut.Close()

	core, err := app.NewCore(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build quiz: %v", err)
	}
	defer core.Engine.Close()

	opts := tui.Options{
		Locale:  cfg.Quiz.Locale,
		NoColor: os.Getenv("NO_COLOR") != "",
	}
	if err := tui.Run(ctx, core.Engine, core.Bank, nil, nil, opts); err != nil {
		logger.Error().Err(err).Msg("terminal ui stopped")
		log.Fatalf("runtime error: %v", err)
	}
}
