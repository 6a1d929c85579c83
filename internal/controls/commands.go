package controls

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	enableCommandNameConstant       = "enable"
	enableShortDescriptionConstant  = "Enable DNS blocking"
	disableCommandNameConstant      = "disable"
	disableShortDescriptionConstant = "Disable DNS blocking, optionally for a bounded time"
	gravityCommandNameConstant      = "gravity"
	gravityShortDescriptionConstant = "Rebuild the blocklist from the configured adlists"
	logsCommandNameConstant         = "logs"
	logsShortDescriptionConstant    = "Show the tail of the DNS query log"
	backupCommandNameConstant       = "backup"
	backupShortDescriptionConstant  = "Export appliance settings to a Teleporter archive"
	restoreCommandNameConstant      = "restore <archive>"
	restoreShortDescriptionConstant = "Import appliance settings from a Teleporter archive"

	flagDurationNameConstant        = "for"
	flagDurationDescriptionConstant = "Disable duration understood by pihole, for example 5m or 30s (permanent when omitted)."
	flagLinesNameConstant           = "lines"
	flagLinesDescriptionConstant    = "Number of log lines to show."
	flagLogPathNameConstant         = "path"
	flagLogPathDescriptionConstant  = "Query log location."
	flagOutputNameConstant          = "output"
	flagOutputDescriptionConstant   = "Archive destination (a generated name in the backup directory when omitted)."
	flagAssumeYesNameConstant       = "yes"
	flagAssumeYesDescription        = "Import without prompting."

	enabledMessageConstant           = "Blocking enabled.\n"
	disabledMessageConstant          = "Blocking disabled.\n"
	disabledForTemplateConstant      = "Blocking disabled for %s.\n"
	backupWrittenTemplateConstant    = "Teleporter archive written to %s.\n"
	restorePromptTemplateConstant    = "Import %s and overwrite current settings? [y/N]: "
	restoreDeclinedMessageConstant   = "Import cancelled.\n"
	restoreFinishedTemplateConstant  = "Teleporter archive %s imported.\n"
	archiveNameTimestampLayoutFormat = "2006-01-02_150405"
	archiveNameTemplateConstant      = "pi-hole-teleporter_%s.tar.gz"

	controlRequestedMessageConstant = "appliance control requested"
	logFieldControlConstant         = "control"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the control commands.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the control cobra commands over one appliance client.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Client                ApplianceClient
	TimeSource            func() time.Time
}

// Build constructs every control command.
func (builder *CommandBuilder) Build() ([]*cobra.Command, error) {
	enableCommand := &cobra.Command{
		Use:   enableCommandNameConstant,
		Short: enableShortDescriptionConstant,
		RunE:  builder.runEnable,
	}

	disableCommand := &cobra.Command{
		Use:   disableCommandNameConstant,
		Short: disableShortDescriptionConstant,
		RunE:  builder.runDisable,
	}
	disableCommand.Flags().String(flagDurationNameConstant, "", flagDurationDescriptionConstant)

	gravityCommand := &cobra.Command{
		Use:   gravityCommandNameConstant,
		Short: gravityShortDescriptionConstant,
		RunE:  builder.runGravity,
	}

	logsCommand := &cobra.Command{
		Use:   logsCommandNameConstant,
		Short: logsShortDescriptionConstant,
		RunE:  builder.runLogs,
	}
	logsCommand.Flags().Int(flagLinesNameConstant, 0, flagLinesDescriptionConstant)
	logsCommand.Flags().String(flagLogPathNameConstant, "", flagLogPathDescriptionConstant)

	backupCommand := &cobra.Command{
		Use:   backupCommandNameConstant,
		Short: backupShortDescriptionConstant,
		RunE:  builder.runBackup,
	}
	backupCommand.Flags().String(flagOutputNameConstant, "", flagOutputDescriptionConstant)

	restoreCommand := &cobra.Command{
		Use:   restoreCommandNameConstant,
		Short: restoreShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runRestore,
	}
	restoreCommand.Flags().Bool(flagAssumeYesNameConstant, false, flagAssumeYesDescription)

	return []*cobra.Command{enableCommand, disableCommand, gravityCommand, logsCommand, backupCommand, restoreCommand}, nil
}

func (builder *CommandBuilder) runEnable(command *cobra.Command, arguments []string) error {
	builder.logControl(enableCommandNameConstant)

	if enableError := builder.Client.Enable(command.Context()); enableError != nil {
		return enableError
	}
	fmt.Fprint(command.OutOrStdout(), enabledMessageConstant)
	return nil
}

func (builder *CommandBuilder) runDisable(command *cobra.Command, arguments []string) error {
	builder.logControl(disableCommandNameConstant)

	duration, _ := command.Flags().GetString(flagDurationNameConstant)
	if disableError := builder.Client.Disable(command.Context(), duration); disableError != nil {
		return disableError
	}

	if len(duration) > 0 {
		fmt.Fprintf(command.OutOrStdout(), disabledForTemplateConstant, duration)
	} else {
		fmt.Fprint(command.OutOrStdout(), disabledMessageConstant)
	}
	return nil
}

func (builder *CommandBuilder) runGravity(command *cobra.Command, arguments []string) error {
	builder.logControl(gravityCommandNameConstant)

	gravityOutput, gravityError := builder.Client.UpdateGravity(command.Context())
	if gravityError != nil {
		return gravityError
	}

	fmt.Fprint(command.OutOrStdout(), gravityOutput)
	if !strings.HasSuffix(gravityOutput, "\n") {
		fmt.Fprintln(command.OutOrStdout())
	}
	return nil
}

func (builder *CommandBuilder) runLogs(command *cobra.Command, arguments []string) error {
	builder.logControl(logsCommandNameConstant)

	configuration := builder.resolveConfiguration()

	logPath, _ := command.Flags().GetString(flagLogPathNameConstant)
	if len(logPath) == 0 {
		logPath = configuration.LogPath
	}
	lineCount, _ := command.Flags().GetInt(flagLinesNameConstant)
	if lineCount <= 0 {
		lineCount = configuration.LogLineCount
	}

	logTail, tailError := builder.Client.TailLog(command.Context(), logPath, lineCount)
	if tailError != nil {
		return tailError
	}

	fmt.Fprint(command.OutOrStdout(), logTail)
	if len(logTail) > 0 && !strings.HasSuffix(logTail, "\n") {
		fmt.Fprintln(command.OutOrStdout())
	}
	return nil
}

func (builder *CommandBuilder) runBackup(command *cobra.Command, arguments []string) error {
	builder.logControl(backupCommandNameConstant)

	archivePath, _ := command.Flags().GetString(flagOutputNameConstant)
	if len(archivePath) == 0 {
		archivePath = builder.generateArchivePath()
	}

	if backupError := builder.Client.TeleporterBackup(command.Context(), archivePath); backupError != nil {
		return backupError
	}
	fmt.Fprintf(command.OutOrStdout(), backupWrittenTemplateConstant, archivePath)
	return nil
}

func (builder *CommandBuilder) runRestore(command *cobra.Command, arguments []string) error {
	builder.logControl(restoreCommandNameConstant)

	archivePath := arguments[0]
	assumeYes, _ := command.Flags().GetBool(flagAssumeYesNameConstant)

	if !assumeYes {
		confirmed, confirmError := readConfirmation(command.InOrStdin(), command.OutOrStdout(),
			fmt.Sprintf(restorePromptTemplateConstant, archivePath))
		if confirmError != nil {
			return confirmError
		}
		if !confirmed {
			fmt.Fprint(command.OutOrStdout(), restoreDeclinedMessageConstant)
			return nil
		}
	}

	if restoreError := builder.Client.TeleporterRestore(command.Context(), archivePath); restoreError != nil {
		return restoreError
	}
	fmt.Fprintf(command.OutOrStdout(), restoreFinishedTemplateConstant, archivePath)
	return nil
}

func (builder *CommandBuilder) generateArchivePath() string {
	configuration := builder.resolveConfiguration()

	timeSource := builder.TimeSource
	if timeSource == nil {
		timeSource = time.Now
	}

	archiveName := fmt.Sprintf(archiveNameTemplateConstant, timeSource().Format(archiveNameTimestampLayoutFormat))
	return filepath.Join(configuration.BackupDirectory, archiveName)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) logControl(controlName string) {
	if builder.LoggerProvider == nil {
		return
	}
	if logger := builder.LoggerProvider(); logger != nil {
		logger.Info(controlRequestedMessageConstant, zap.String(logFieldControlConstant, controlName))
	}
}

func readConfirmation(input io.Reader, output io.Writer, prompt string) (bool, error) {
	if _, writeError := io.WriteString(output, prompt); writeError != nil {
		return false, writeError
	}

	response, readError := bufio.NewReader(input).ReadString('\n')
	if readError != nil && readError != io.EOF {
		return false, readError
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
