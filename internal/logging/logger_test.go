package logging

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHonoursLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{App: "qinna-quiz", Env: "test", Level: "warn", Out: &buf})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "app=qinna-quiz")
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger := New(Options{Level: "nonsense", Out: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{App: "ctx", Out: &buf})
	ctx := IntoContext(context.Background(), logger)

	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	//nolint:staticcheck // SA1012
	assert.Equal(t, zerolog.Disabled, FromContext(nil).GetLevel())
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")
	w, err := OpenFile(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.FileExists(t, path)

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing", "quiz.log"))
	assert.ErrorContains(t, err, "open log file")
}
