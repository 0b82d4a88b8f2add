package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/lianhua/qinna-quiz/internal/config"
	"github.com/lianhua/qinna-quiz/internal/logging"
	"github.com/lianhua/qinna-quiz/internal/question"
	"github.com/lianhua/qinna-quiz/internal/server"
	"github.com/lianhua/qinna-quiz/internal/session"
	ws "github.com/lianhua/qinna-quiz/pkg/http/ws"
)

// Core is the quiz itself: the bank, its variants and the one engine that
// runs the session. Both binaries build it the same way.
type Core struct {
	Bank     *question.Bank
	Variants question.Variants
	Engine   *session.Engine
	Registry *prometheus.Registry
}

// NewCore loads the question bank (QUIZ_BANK_FILE or the built-in
// curriculum) and builds the engine.
func NewCore(cfg *config.App, logger zerolog.Logger) (*Core, error) {
	bank, err := loadBank(cfg.Quiz.BankFile)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("source", bankSource(cfg.Quiz.BankFile)).
		Int("questions", bank.Len()).
		Msg("question bank loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	variants := question.DefaultVariants(cfg.Quiz.BasicCutoff)
	engine := session.NewEngine(bank, variants, session.Options{
		AutoAdvanceDelay: cfg.Quiz.AutoAdvanceDelay,
		Messages:         session.MessagesFor(cfg.Quiz.Locale),
		ShuffleSeed:      cfg.Quiz.ShuffleSeed,
		Metrics:          session.NewMetrics(registry),
	}, logger)

	return &Core{
		Bank:     bank,
		Variants: variants,
		Engine:   engine,
		Registry: registry,
	}, nil
}

func loadBank(path string) (*question.Bank, error) {
	if path == "" {
		return question.Curriculum(), nil
	}
	bank, err := question.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return bank, nil
}

func bankSource(path string) string {
	if path == "" {
		return "curriculum"
	}
	return path
}

// NewLogger builds the process logger. With no LOG_FILE it writes to
// fallback; the returned closer releases the log file.
func NewLogger(cfg *config.App, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = nopCloser{}
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		out, closer = f, f
	}
	return logging.New(logging.Options{
		App:   cfg.Name,
		Env:   cfg.Env,
		Level: cfg.Log.Level,
		Out:   out,
	}), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Application serves the quiz over HTTP and WebSocket.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger
	logOut io.Closer

	core      *Core
	hub       *ws.Hub
	wsHandler *session.Handler
	http      *http.Server
}

// New bootstraps logger, quiz core and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger, logOut, err := NewLogger(cfg, nil)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("starting application bootstrap")

	core, err := NewCore(cfg, logger)
	if err != nil {
		_ = logOut.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	wsHandler := session.NewHandler(core.Engine, hub, logger)
	quizHandlers := session.NewHTTPHandlers(core.Engine, logger)

	apiServer := server.NewHTTPServer(cfg, logger, core.Registry, quizHandlers, wsHandler)

	return &Application{
		cfg:       cfg,
		logger:    logger,
		logOut:    logOut,
		core:      core,
		hub:       hub,
		wsHandler: wsHandler,
		http:      apiServer,
	}, nil
}

// Handler exposes the routed HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.http.Handler
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	a.shutdown()
	return runErr
}

func (a *Application) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.wsHandler.Close()
	a.hub.CloseAll()
	a.core.Engine.Close()

	a.logger.Info().Msg("shutdown complete")
	if err := a.logOut.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}
}
