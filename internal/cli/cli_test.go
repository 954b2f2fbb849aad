package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidate(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"validate"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "validate", cfg.Command)
	assert.Equal(t, "architecture", cfg.ArchPath)
	assert.Equal(t, ".", cfg.BaseDir)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{
		"spec", "--id", "I-1", "-a", "arch.hcl", "--root", "/proj",
		"--workers", "4", "--log-format", "JSON", "--log-level", "debug",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "spec", cfg.Command)
	assert.Equal(t, "I-1", cfg.NodeID)
	assert.Equal(t, "arch.hcl", cfg.ArchPath, "shorthand overrides the long flag")
	assert.Equal(t, "/proj", cfg.BaseDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseHelp(t *testing.T) {
	for _, args := range [][]string{nil, {"--help"}, {"-h"}, {"help"}} {
		var out bytes.Buffer
		_, shouldExit, err := Parse(args, &out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"frobnicate"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, `unknown command "frobnicate"`)
}

func TestParseSpecRequiresID(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"spec"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseTestRequiresID(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"test"}, &out)
	require.Error(t, err)
}

func TestParseInvalidLogSettings(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"validate", "--log-format", "xml"}, &out)
	require.Error(t, err)

	_, _, err = Parse([]string{"validate", "--log-level", "loud"}, &out)
	require.Error(t, err)
}

func TestParseUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"validate", "--bogus"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
