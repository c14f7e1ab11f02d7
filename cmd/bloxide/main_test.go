package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func resetLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})
}

func TestSetupLoggingInvalidLevel(t *testing.T) {
	resetLogging(t)

	c, err := setupLogging("loud", "", true)
	require.Error(t, err)
	require.Nil(t, c)
}

func TestSetupLoggingFile(t *testing.T) {
	resetLogging(t)

	path := filepath.Join(t.TempDir(), "bloxide.log")
	c, err := setupLogging("debug", path, true)
	require.NoError(t, err)
	require.Equal(t, log.DebugLevel, log.GetLevel())

	log.Debug("written to file")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written to file")
}

func TestSetupLoggingBadFile(t *testing.T) {
	resetLogging(t)

	c, err := setupLogging("info", filepath.Join(t.TempDir(), "missing", "x.log"), false)
	require.Error(t, err)
	require.Nil(t, c)
}

func TestSetupLoggingNoFile(t *testing.T) {
	resetLogging(t)

	c, err := setupLogging("warn", "", false)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.Equal(t, log.WarnLevel, log.GetLevel())
}
