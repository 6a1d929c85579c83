package audit

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeltaEpiales/PiU/internal/adlist"
)

const (
	commandNameConstant             = "audit"
	commandShortDescriptionConstant = "Audit adlist sources for duplicates and dead URLs"
	commandLongDescriptionConstant  = "audit deduplicates the adlist source store (after operator confirmation) and probes every source for reachability, reporting stale entries."
	flagStoreNameConstant           = "store"
	flagStoreDescriptionConstant    = "Path to the adlist source store."
	flagAssumeYesNameConstant       = "yes"
	flagAssumeYesDescription        = "Apply the deduplicated rewrite without prompting."
	flagTimeoutNameConstant         = "timeout"
	flagTimeoutDescriptionConstant  = "Per-source probe timeout in seconds."
	auditStartedMessageConstant     = "adlist audit started"
	logFieldStorePathConstant       = "store_path"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the audit command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Store                 ListStore
	Prober                Prober
	Prompter              ConfirmationPrompter
}

// Build constructs the cobra command for the adlist audit workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagStoreNameConstant, "", flagStoreDescriptionConstant)
	command.Flags().Bool(flagAssumeYesNameConstant, false, flagAssumeYesDescription)
	command.Flags().Int(flagTimeoutNameConstant, 0, flagTimeoutDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.resolveOptions(command)

	logger := builder.resolveLogger()
	logger.Info(auditStartedMessageConstant, zap.String(logFieldStorePathConstant, options.StorePath))

	store := builder.Store
	if store == nil {
		store = adlist.NewStore(options.StorePath)
	}

	prober := builder.Prober
	if prober == nil {
		prober = NewHTTPProber(options.ProbeTimeout)
	}

	prompter := builder.Prompter
	if prompter == nil {
		prompter = NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
	}

	service := NewService(store, prober, prompter, command.OutOrStdout(), command.ErrOrStderr())
	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command) CommandOptions {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().sanitize()
	}

	storePath, _ := command.Flags().GetString(flagStoreNameConstant)
	if len(storePath) == 0 {
		storePath = configuration.StorePath
	}

	assumeYes, _ := command.Flags().GetBool(flagAssumeYesNameConstant)
	if !assumeYes {
		assumeYes = configuration.AssumeYes
	}

	timeoutSeconds, _ := command.Flags().GetInt(flagTimeoutNameConstant)
	if timeoutSeconds <= 0 {
		timeoutSeconds = configuration.ProbeTimeoutSeconds
	}

	return CommandOptions{
		StorePath:    storePath,
		ProbeTimeout: time.Duration(timeoutSeconds) * time.Second,
		AssumeYes:    assumeYes,
	}
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
