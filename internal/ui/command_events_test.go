package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/DeltaEpiales/PiU/internal/execshell"
	"github.com/DeltaEpiales/PiU/internal/ui"
)

func TestConsoleCommandEventLoggerRendersLifecycle(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.InfoLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observedCore))

	command := execshell.ShellCommand{
		Name:    execshell.CommandPihole,
		Details: execshell.CommandDetails{Arguments: []string{"status"}},
	}

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "unavailable"})
	eventLogger.CommandExecutionFailed(command, errors.New("binary missing"))

	loggedEntries := observedLogs.All()
	require.Len(testInstance, loggedEntries, 4)
	require.Equal(testInstance, "Checking Pi-hole blocking status", loggedEntries[0].Message)
	require.Equal(testInstance, zapcore.InfoLevel, loggedEntries[0].Level)
	require.Equal(testInstance, "Collected Pi-hole blocking status", loggedEntries[1].Message)
	require.Equal(testInstance, zapcore.WarnLevel, loggedEntries[2].Level)
	require.Equal(testInstance, "Could not determine Pi-hole status (exit code 1: unavailable)", loggedEntries[2].Message)
	require.Equal(testInstance, zapcore.ErrorLevel, loggedEntries[3].Level)
	require.Equal(testInstance, "pihole status failed: binary missing", loggedEntries[3].Message)
}
