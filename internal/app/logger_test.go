package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevelAndFormat(t *testing.T) {
	t.Parallel()

	t.Run("level filters output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger(&Config{LogLevel: "warn", LogFormat: "text"}, buf)

		logger.Info("hidden")
		assert.Empty(t, buf.String())

		logger.Warn("visible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("json format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger(&Config{LogLevel: "info", LogFormat: "json"}, buf)

		logger.Info("hello")
		require.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("empty level defaults to info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger(&Config{LogFormat: "text"}, buf)

		logger.Debug("hidden")
		assert.Empty(t, buf.String())

		logger.Info("visible")
		assert.Contains(t, buf.String(), "visible")
	})
}
