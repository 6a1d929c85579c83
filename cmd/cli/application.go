package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/DeltaEpiales/PiU/internal/audit"
	"github.com/DeltaEpiales/PiU/internal/controls"
	"github.com/DeltaEpiales/PiU/internal/execshell"
	"github.com/DeltaEpiales/PiU/internal/netconf"
	"github.com/DeltaEpiales/PiU/internal/netscan"
	"github.com/DeltaEpiales/PiU/internal/piholecli"
	"github.com/DeltaEpiales/PiU/internal/querylog"
	"github.com/DeltaEpiales/PiU/internal/status"
	"github.com/DeltaEpiales/PiU/internal/ui"
	"github.com/DeltaEpiales/PiU/internal/utils"
)

const (
	applicationNameConstant                 = "piu"
	applicationShortDescriptionConstant     = "Administration console for a Pi-hole DNS-filtering appliance"
	applicationLongDescriptionConstant      = "piu wraps the pihole command line and the appliance's system files behind one console: adlist auditing, blocking controls, statistics, network configuration, and an interactive menu."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "PIU"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Audit    audit.CommandConfiguration    `mapstructure:"audit"`
	Stats    querylog.CommandConfiguration `mapstructure:"stats"`
	Network  netconf.CommandConfiguration  `mapstructure:"network"`
	Scan     netscan.CommandConfiguration  `mapstructure:"scan"`
	Controls controls.CommandConfiguration `mapstructure:"controls"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	shellExecutor         *execshell.ShellExecutor
	piholeClient          *piholecli.Client
}

// applianceExecutor defers shell executor construction until the logger exists.
type applianceExecutor struct {
	application *Application
}

func (executor *applianceExecutor) ExecutePihole(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	resolvedExecutor, resolveError := executor.application.resolveExecutor()
	if resolveError != nil {
		return execshell.ExecutionResult{}, resolveError
	}
	return resolvedExecutor.ExecutePihole(executionContext, details)
}

func (executor *applianceExecutor) ExecuteTail(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	resolvedExecutor, resolveError := executor.application.resolveExecutor()
	if resolveError != nil {
		return execshell.ExecutionResult{}, resolveError
	}
	return resolvedExecutor.ExecuteTail(executionContext, details)
}

func (executor *applianceExecutor) ExecuteSystemctl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	resolvedExecutor, resolveError := executor.application.resolveExecutor()
	if resolveError != nil {
		return execshell.ExecutionResult{}, resolveError
	}
	return resolvedExecutor.ExecuteSystemctl(executionContext, details)
}

func (executor *applianceExecutor) ExecuteHostnamectl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	resolvedExecutor, resolveError := executor.application.resolveExecutor()
	if resolveError != nil {
		return execshell.ExecutionResult{}, resolveError
	}
	return resolvedExecutor.ExecuteHostnamectl(executionContext, details)
}

func (executor *applianceExecutor) ExecuteNmap(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	resolvedExecutor, resolveError := executor.application.resolveExecutor()
	if resolveError != nil {
		return execshell.ExecutionResult{}, resolveError
	}
	return resolvedExecutor.ExecuteNmap(executionContext, details)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	deferredExecutor := &applianceExecutor{application: application}
	application.piholeClient, _ = piholecli.NewClient(deferredExecutor)

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	auditBuilder := audit.CommandBuilder{
		LoggerProvider: application.loggerProvider,
		ConfigurationProvider: func() audit.CommandConfiguration {
			return application.configuration.Tools.Audit
		},
	}
	auditCommand, auditBuildError := auditBuilder.Build()
	if auditBuildError == nil {
		cobraCommand.AddCommand(auditCommand)
	}

	statusBuilder := status.CommandBuilder{
		LoggerProvider: application.loggerProvider,
		Reporter:       application.piholeClient,
	}
	statusCommand, statusBuildError := statusBuilder.Build()
	if statusBuildError == nil {
		cobraCommand.AddCommand(statusCommand)
	}

	statsBuilder := querylog.CommandBuilder{
		LoggerProvider: application.loggerProvider,
		ConfigurationProvider: func() querylog.CommandConfiguration {
			return application.configuration.Tools.Stats
		},
	}
	statsCommand, statsBuildError := statsBuilder.Build()
	if statsBuildError == nil {
		cobraCommand.AddCommand(statsCommand)
	}

	scanBuilder := netscan.CommandBuilder{
		LoggerProvider: application.loggerProvider,
		ConfigurationProvider: func() netscan.CommandConfiguration {
			return application.configuration.Tools.Scan
		},
		Executor: deferredExecutor,
	}
	scanCommand, scanBuildError := scanBuilder.Build()
	if scanBuildError == nil {
		cobraCommand.AddCommand(scanCommand)
	}

	controlsBuilder := controls.CommandBuilder{
		LoggerProvider: application.loggerProvider,
		ConfigurationProvider: func() controls.CommandConfiguration {
			return application.configuration.Tools.Controls
		},
		Client: application.piholeClient,
	}
	controlCommands, controlsBuildError := controlsBuilder.Build()
	if controlsBuildError == nil {
		cobraCommand.AddCommand(controlCommands...)
	}

	staticIPBuilder := netconf.StaticIPCommandBuilder{
		LoggerProvider: application.loggerProvider,
		ConfigurationProvider: func() netconf.CommandConfiguration {
			return application.configuration.Tools.Network
		},
	}
	staticIPCommand, staticIPBuildError := staticIPBuilder.Build()
	if staticIPBuildError == nil {
		cobraCommand.AddCommand(staticIPCommand)
	}

	hostnameBuilder := netconf.HostnameCommandBuilder{
		LoggerProvider: application.loggerProvider,
		ConfigurationProvider: func() netconf.CommandConfiguration {
			return application.configuration.Tools.Network
		},
		Applier: application.piholeClient,
	}
	hostnameCommand, hostnameBuildError := hostnameBuilder.Build()
	if hostnameBuildError == nil {
		cobraCommand.AddCommand(hostnameCommand)
	}

	cobraCommand.AddCommand(application.buildMenuCommand())

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

// RootCommand exposes the assembled command tree.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

// resolveExecutor builds the shell executor on first use, after the logger is
// configured.
func (application *Application) resolveExecutor() (*execshell.ShellExecutor, error) {
	if application.shellExecutor != nil {
		return application.shellExecutor, nil
	}

	consoleObserver := ui.NewConsoleCommandEventLogger(application.logger)
	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, execshell.NewOSCommandRunner(), consoleObserver)
	if executorError != nil {
		return nil, executorError
	}

	application.shellExecutor = shellExecutor
	return shellExecutor, nil
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	createdLogger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = createdLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

// runRootCommand starts the interactive menu when no subcommand is named.
func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	if len(arguments) > 0 {
		return command.Help()
	}

	return application.runMenu(command)
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
