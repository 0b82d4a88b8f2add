package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianhua/qinna-quiz/internal/config"
	"github.com/lianhua/qinna-quiz/internal/question"
	"github.com/lianhua/qinna-quiz/internal/session"
)

func testConfig() *config.App {
	return &config.App{
		Name:                    "qinna-quiz",
		Env:                     "test",
		HTTPAddr:                "127.0.0.1:0",
		GracefulShutdownTimeout: time.Second,
		Log:                     config.Log{Level: "debug"},
		Quiz: config.Quiz{
			AutoAdvanceDelay: time.Hour,
			BasicCutoff:      question.DefaultBasicCutoff,
			Locale:           config.LocaleES,
			ShuffleSeed:      1,
		},
	}
}

func TestNewCoreUsesCurriculumByDefault(t *testing.T) {
	core, err := NewCore(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer core.Engine.Close()

	assert.Equal(t, 32, core.Bank.Len())
	assert.Equal(t, []string{question.VariantBasic, question.VariantFull}, core.Variants.Names())

	snap, err := core.Engine.ChooseVariant(question.VariantBasic)
	require.NoError(t, err)
	assert.Equal(t, 18, snap.TotalCount)
}

func TestNewCoreLoadsBankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
questions:
  - id: 1
    prompt: "Cuál es la palanca nº 1?"
    answer: "Proteger los hombros"
  - id: 40
    prompt: "Cuál es la palanca nº 40?"
    answer: "Extra|Palanca extra"
`), 0o644))

	cfg := testConfig()
	cfg.Quiz.BankFile = path
	cfg.Quiz.BasicCutoff = 1
	core, err := NewCore(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer core.Engine.Close()

	assert.Equal(t, 2, core.Bank.Len())
	snap, err := core.Engine.ChooseVariant(question.VariantBasic)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalCount)
}

func TestNewCoreRejectsBadBankFile(t *testing.T) {
	cfg := testConfig()
	cfg.Quiz.BankFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewCore(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load question bank")
}

func TestNewCoreLocale(t *testing.T) {
	cfg := testConfig()
	cfg.Quiz.Locale = config.LocaleEN
	core, err := NewCore(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer core.Engine.Close()

	_, err = core.Engine.ChooseVariant(question.VariantFull)
	require.NoError(t, err)
	snap := core.Engine.Skip()
	assert.True(t, strings.HasPrefix(snap.FeedbackText, "Skipped."), snap.FeedbackText)
}

func TestNewLoggerWritesToFile(t *testing.T) {
	cfg := testConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "quiz.log")

	logger, closer, err := NewLogger(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	logger.Info().Msg("hello from test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestApplicationServesQuiz(t *testing.T) {
	cfg := testConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "api.log")
	application, err := New(context.Background(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/quiz/variant", "application/json", strings.NewReader(`{"variant":"full"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap session.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, session.PhaseInProgress, snap.Phase)

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)
}

func TestApplicationRunStopsOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "api.log")
	application, err := New(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
