package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Supported feedback locales.
const (
	LocaleES = "es"
	LocaleEN = "en"
)

// App holds core runtime configuration shared across binaries.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"qinna-quiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"10s"`

	Log  Log
	Quiz Quiz
}

// Log controls logger level and destination.
type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE"`
}

// Quiz groups session defaults.
type Quiz struct {
	AutoAdvanceDelay time.Duration `env:"QUIZ_AUTO_ADVANCE_DELAY" envDefault:"2500ms"`
	BasicCutoff      int           `env:"QUIZ_BASIC_CUTOFF" envDefault:"18"`
	BankFile         string        `env:"QUIZ_BANK_FILE"`
	Locale           string        `env:"QUIZ_LOCALE" envDefault:"es"`
	ShuffleSeed      int64         `env:"QUIZ_SHUFFLE_SEED" envDefault:"0"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the quiz engine cannot run with.
func (a *App) Validate() error {
	if a.Quiz.AutoAdvanceDelay <= 0 {
		return fmt.Errorf("QUIZ_AUTO_ADVANCE_DELAY must be positive, got %s", a.Quiz.AutoAdvanceDelay)
	}
	if a.Quiz.BasicCutoff < 1 {
		return fmt.Errorf("QUIZ_BASIC_CUTOFF must be at least 1, got %d", a.Quiz.BasicCutoff)
	}
	switch a.Quiz.Locale {
	case LocaleES, LocaleEN:
	default:
		return fmt.Errorf("QUIZ_LOCALE must be %q or %q, got %q", LocaleES, LocaleEN, a.Quiz.Locale)
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}
