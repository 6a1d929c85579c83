package querylog

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandNameConstant             = "stats"
	commandShortDescriptionConstant = "Summarize query-log statistics from the FTL database"
	commandLongDescriptionConstant  = "stats reads the FTL query database read-only and reports totals, top domains, and top clients over a time window."
	flagDatabaseNameConstant        = "db"
	flagDatabaseDescriptionConstant = "Path to the FTL query database."
	flagWindowNameConstant          = "window"
	flagWindowDescriptionConstant   = "Window in hours to aggregate over (0 for all time)."
	flagLimitNameConstant           = "limit"
	flagLimitDescriptionConstant    = "Number of entries in top-domain and top-client lists."
	flagBlockedNameConstant         = "blocked"
	flagBlockedDescriptionConstant  = "Restrict the domain list to blocked queries."
	statsStartedMessageConstant     = "query statistics requested"
	logFieldDatabasePathConstant    = "database_path"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the stats command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the stats cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Source                StatisticsSource
}

// Build constructs the cobra command for query-log statistics.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagDatabaseNameConstant, "", flagDatabaseDescriptionConstant)
	command.Flags().Int(flagWindowNameConstant, -1, flagWindowDescriptionConstant)
	command.Flags().Int(flagLimitNameConstant, 0, flagLimitDescriptionConstant)
	command.Flags().Bool(flagBlockedNameConstant, false, flagBlockedDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().sanitize()
	}

	databasePath, _ := command.Flags().GetString(flagDatabaseNameConstant)
	if len(databasePath) == 0 {
		databasePath = configuration.DatabasePath
	}

	windowHours, _ := command.Flags().GetInt(flagWindowNameConstant)
	if windowHours < 0 {
		windowHours = configuration.WindowHours
	}

	limit, _ := command.Flags().GetInt(flagLimitNameConstant)
	if limit <= 0 {
		limit = configuration.Limit
	}

	blockedOnly, _ := command.Flags().GetBool(flagBlockedNameConstant)

	logger := builder.resolveLogger()
	logger.Info(statsStartedMessageConstant, zap.String(logFieldDatabasePathConstant, databasePath))

	source := builder.Source
	if source == nil {
		source = NewRepository(databasePath)
	}

	service := NewService(source, command.OutOrStdout())
	return service.Report(command.Context(), ReportOptions{
		Window:      time.Duration(windowHours) * time.Hour,
		Limit:       limit,
		BlockedOnly: blockedOnly,
	})
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
