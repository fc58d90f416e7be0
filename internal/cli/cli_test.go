package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullFlagSet(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"--config", "docs/",
		"--vars", "base.yaml",
		"--vars", "sweep.yaml",
		"--dataset", "oc20",
		"--bridge-url", "http://tracker:3000",
		"--bridge-namespace", "/registry",
		"--bridge-timeout", "5s",
		"--log-format", "text",
		"--log-level", "debug",
	}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "docs/", cfg.ConfigPath)
	assert.Equal(t, []string{"base.yaml", "sweep.yaml"}, cfg.VarsFiles)
	assert.Equal(t, "oc20", cfg.Dataset)
	assert.Equal(t, "http://tracker:3000", cfg.BridgeURL)
	assert.Equal(t, "/registry", cfg.BridgeNamespace)
	assert.Equal(t, 5*time.Second, cfg.BridgeTimeout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParsePositionalPathAndShorthand(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"docs/tasks.hcl"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "docs/tasks.hcl", cfg.ConfigPath)

	cfg, _, err = Parse([]string{"-c", "other.yaml"}, out)
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", cfg.ConfigPath)
}

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"docs/"}, out)
	require.NoError(t, err)

	assert.Empty(t, cfg.BridgeURL)
	assert.Equal(t, "/", cfg.BridgeNamespace)
	assert.Equal(t, 10*time.Second, cfg.BridgeTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseValidation(t *testing.T) {
	t.Parallel()

	t.Run("bad log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--log-format", "xml", "docs/"}, out)
		require.Error(t, err)

		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--no-such-flag"}, out)
		require.Error(t, err)

		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})
}
