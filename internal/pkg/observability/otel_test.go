package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorders/internal/pkg/observability"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, observability.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("chatty"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	observability.NewLogger(&buf, "json", slog.LevelInfo).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	observability.NewLogger(&buf, "text", slog.LevelInfo).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestInit_NoExporters(t *testing.T) {
	ins, shutdown, err := observability.Init(t.Context(), observability.Settings{ServiceName: "test"})

	require.NoError(t, err)
	require.NotNil(t, ins.Logger)
	assert.NotNil(t, ins.Tracer("x"))
	assert.NotNil(t, ins.Meter("x"))
	require.NoError(t, shutdown(t.Context()))
}
