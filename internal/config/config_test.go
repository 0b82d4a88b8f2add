package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "qinna-quiz", cfg.Name)
	assert.Equal(t, 2500*time.Millisecond, cfg.Quiz.AutoAdvanceDelay)
	assert.Equal(t, 18, cfg.Quiz.BasicCutoff)
	assert.Equal(t, LocaleES, cfg.Quiz.Locale)
	assert.Empty(t, cfg.Quiz.BankFile)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("QUIZ_AUTO_ADVANCE_DELAY", "1s")
	t.Setenv("QUIZ_BASIC_CUTOFF", "10")
	t.Setenv("QUIZ_LOCALE", "en")
	t.Setenv("QUIZ_SHUFFLE_SEED", "42")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, time.Second, cfg.Quiz.AutoAdvanceDelay)
	assert.Equal(t, 10, cfg.Quiz.BasicCutoff)
	assert.Equal(t, LocaleEN, cfg.Quiz.Locale)
	assert.Equal(t, int64(42), cfg.Quiz.ShuffleSeed)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"zero delay":     {"QUIZ_AUTO_ADVANCE_DELAY", "0s"},
		"zero cutoff":    {"QUIZ_BASIC_CUTOFF", "0"},
		"unknown locale": {"QUIZ_LOCALE", "fr"},
		"bad duration":   {"QUIZ_AUTO_ADVANCE_DELAY", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load(context.Background())
			assert.Error(t, err)
		})
	}
}
