package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestLevelsAreEmitted(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	log.Error("e")

	require.Equal(t, 4, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLevelFiltering(t *testing.T) {
	log, logs := newObserved(zapcore.WarnLevel)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	assert.Equal(t, 1, logs.Len())
}

func TestTypedFieldsSurviveConversion(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	log.Info("fields",
		String("s", "v"),
		Int("n", 7),
		Float64("f", 1.5),
		Bool("b", true),
		Duration("d", time.Second),
		Strings("ids", []string{"a", "b"}),
		Err(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "v", ctx["s"])
	assert.Equal(t, int64(7), ctx["n"])
	assert.Equal(t, 1.5, ctx["f"])
	assert.Equal(t, true, ctx["b"])
	assert.Equal(t, time.Second, ctx["d"])
	assert.Equal(t, []interface{}{"a", "b"}, ctx["ids"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestErrNil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestWithAttachesFieldsToChildOnly(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	child := log.With(String("component", "cache"))
	child.Info("from child")
	log.Info("from parent")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "cache", logs.All()[0].ContextMap()["component"])
	assert.NotContains(t, logs.All()[1].ContextMap(), "component")
}

func TestNamed(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	log.Named("engine").Named("cache").Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "engine.cache", logs.All()[0].LoggerName)
}

func TestNewLoggerDefaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewLoggerConsoleFormat(t *testing.T) {
	log, err := NewLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must be safe to call every method.
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	assert.NotNil(t, log.With(String("k", "v")))
	assert.NotNil(t, log.Named("n"))
}
