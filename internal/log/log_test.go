package log_test

import (
	"bytes"
	"testing"

	"bennypowers.dev/tokenlint/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.LevelWarn)

	t.Run("Warn level drops Debug and Info", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelWarn)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Debug level logs everything", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelDebug)

		log.Debug("debug message")
		log.Info("info message")

		output := buf.String()
		assert.Contains(t, output, "debug message")
		assert.Contains(t, output, "info message")
	})

	t.Run("messages carry the prefix", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelInfo)

		log.Info("checked %d files", 3)

		assert.Equal(t, "[tokenlint] checked 3 files\n", buf.String())
	})
}

func TestNilOutputDoesNotPanic(t *testing.T) {
	log.SetOutput(nil)
	assert.NotPanics(t, func() {
		log.Error("dropped")
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.LevelDebug,
		"INFO":    log.LevelInfo,
		" warn ":  log.LevelWarn,
		"warning": log.LevelWarn,
		"error":   log.LevelError,
	}
	for name, want := range cases {
		got, err := log.ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
		assert.NotEmpty(t, got.String())
	}

	_, err := log.ParseLevel("verbose")
	assert.Error(t, err)
}
