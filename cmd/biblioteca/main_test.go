package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewLogger_HonorsTheLevel(t *testing.T) {
	// act
	debugLogger, debugErr := newLogger("debug")
	warnLogger, warnErr := newLogger("WARN")
	_, invalidErr := newLogger("verbose")

	// assert
	require.NoError(t, debugErr)
	require.NoError(t, warnErr)
	assert.True(t, debugLogger.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, warnLogger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, warnLogger.Enabled(context.Background(), slog.LevelError))
	assert.Error(t, invalidErr)
}

func Test_RootCommand_HasAllSubcommands(t *testing.T) {
	// act
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	// assert
	assert.Subset(t, names, []string{"serve", "migrate", "create-admin"})
}
