package status

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeltaEpiales/PiU/internal/sysinfo"
)

const (
	commandNameConstant             = "status"
	commandShortDescriptionConstant = "Show blocking state and host health"
	commandLongDescriptionConstant  = "status combines the appliance's blocking state and version with uptime, load, memory, disk, and temperature readings from the host."
	statusStartedMessageConstant    = "status screen requested"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the status cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	Reporter       BlockingReporter
	Collector      HealthCollector
}

// Build constructs the cobra command for the status screen.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	logger.Info(statusStartedMessageConstant)

	collector := builder.Collector
	if collector == nil {
		collector = sysinfo.NewCollector()
	}

	service := NewService(builder.Reporter, collector, command.OutOrStdout())
	return service.Render(command.Context())
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
