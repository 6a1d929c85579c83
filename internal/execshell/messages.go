package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
)

const (
	piholeStatusSubcommandConstant     = "status"
	piholeEnableSubcommandConstant     = "enable"
	piholeDisableSubcommandConstant    = "disable"
	piholeGravityFlagConstant          = "-g"
	piholeAdminFlagConstant            = "-a"
	piholeTeleporterFlagConstant       = "-t"
	systemctlRestartVerbConstant       = "restart"
	hostnamectlSetHostnameVerbConstant = "set-hostname"
)

const (
	piholeStatusStartConstant               = "Checking Pi-hole blocking status"
	piholeStatusSuccessConstant             = "Collected Pi-hole blocking status"
	piholeStatusFailureTemplateConstant     = "Could not determine Pi-hole status (exit code %d%s)"
	piholeEnableStartConstant               = "Enabling Pi-hole blocking"
	piholeEnableSuccessConstant             = "Pi-hole blocking enabled"
	piholeEnableFailureTemplateConstant     = "Failed to enable Pi-hole blocking (exit code %d%s)"
	piholeDisableStartConstant              = "Disabling Pi-hole blocking"
	piholeDisableSuccessConstant            = "Pi-hole blocking disabled"
	piholeDisableFailureTemplateConstant    = "Failed to disable Pi-hole blocking (exit code %d%s)"
	piholeGravityStartConstant              = "Updating gravity block database"
	piholeGravitySuccessConstant            = "Gravity block database updated"
	piholeGravityFailureTemplateConstant    = "Failed to update gravity (exit code %d%s)"
	piholeTeleporterStartConstant           = "Running teleporter archive operation"
	piholeTeleporterSuccessConstant         = "Teleporter archive operation completed"
	piholeTeleporterFailureTemplateConstant = "Teleporter archive operation failed (exit code %d%s)"
	systemctlRestartStartTemplateConstant   = "Restarting %s"
	systemctlRestartSuccessTemplateConstant = "Restarted %s"
	systemctlRestartFailureTemplateConstant = "Failed to restart %s (exit code %d%s)"
	hostnamectlSetStartTemplateConstant     = "Setting hostname to %s"
	hostnamectlSetSuccessTemplateConstant   = "Hostname set to %s"
	hostnamectlSetFailureTemplateConstant   = "Failed to set hostname to %s (exit code %d%s)"
	nmapScanStartTemplateConstant           = "Scanning network %s"
	nmapScanSuccessTemplateConstant         = "Scanned network %s"
	nmapScanFailureTemplateConstant         = "Failed to scan network %s (exit code %d%s)"
	fallbackUnknownValueLabelConstant       = "unknown"
	systemctlDefaultUnitLabelConstant       = "service"
)

// CommandMessageFormatter builds human-readable messages describing command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if stage == messageStageExecutionFailure {
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, formatter.formatCommandLabel(command), formatter.describeFailure(failure))
	}

	switch command.Name {
	case CommandPihole:
		if message := formatter.describePiholeMessage(command, result, stage); len(message) > 0 {
			return message
		}
	case CommandSystemctl:
		if message := formatter.describeSystemctlMessage(command, result, stage); len(message) > 0 {
			return message
		}
	case CommandHostnamectl:
		if message := formatter.describeHostnamectlMessage(command, result, stage); len(message) > 0 {
			return message
		}
	case CommandNmap:
		if message := formatter.describeNmapMessage(command, result, stage); len(message) > 0 {
			return message
		}
	}

	return formatter.buildGenericMessage(command, result, stage)
}

func (formatter CommandMessageFormatter) describePiholeMessage(command ShellCommand, result ExecutionResult, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return emptyStringConstant
	}

	switch arguments[0] {
	case piholeStatusSubcommandConstant:
		return formatter.selectStageMessage(stage, piholeStatusStartConstant, piholeStatusSuccessConstant, fmt.Sprintf(piholeStatusFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)))
	case piholeEnableSubcommandConstant:
		return formatter.selectStageMessage(stage, piholeEnableStartConstant, piholeEnableSuccessConstant, fmt.Sprintf(piholeEnableFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)))
	case piholeDisableSubcommandConstant:
		return formatter.selectStageMessage(stage, piholeDisableStartConstant, piholeDisableSuccessConstant, fmt.Sprintf(piholeDisableFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)))
	case piholeGravityFlagConstant:
		return formatter.selectStageMessage(stage, piholeGravityStartConstant, piholeGravitySuccessConstant, fmt.Sprintf(piholeGravityFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)))
	case piholeAdminFlagConstant:
		if len(arguments) > 1 && arguments[1] == piholeTeleporterFlagConstant {
			return formatter.selectStageMessage(stage, piholeTeleporterStartConstant, piholeTeleporterSuccessConstant, fmt.Sprintf(piholeTeleporterFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)))
		}
	}

	return emptyStringConstant
}

func (formatter CommandMessageFormatter) describeSystemctlMessage(command ShellCommand, result ExecutionResult, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 || arguments[0] != systemctlRestartVerbConstant {
		return emptyStringConstant
	}

	unitName := systemctlDefaultUnitLabelConstant
	if len(arguments) > 1 {
		unitName = arguments[1]
	}

	return formatter.selectStageMessage(
		stage,
		fmt.Sprintf(systemctlRestartStartTemplateConstant, unitName),
		fmt.Sprintf(systemctlRestartSuccessTemplateConstant, unitName),
		fmt.Sprintf(systemctlRestartFailureTemplateConstant, unitName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
	)
}

func (formatter CommandMessageFormatter) describeHostnamectlMessage(command ShellCommand, result ExecutionResult, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || arguments[0] != hostnamectlSetHostnameVerbConstant {
		return emptyStringConstant
	}

	requestedHostname := formatter.ensureValue(arguments[1])
	return formatter.selectStageMessage(
		stage,
		fmt.Sprintf(hostnamectlSetStartTemplateConstant, requestedHostname),
		fmt.Sprintf(hostnamectlSetSuccessTemplateConstant, requestedHostname),
		fmt.Sprintf(hostnamectlSetFailureTemplateConstant, requestedHostname, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
	)
}

func (formatter CommandMessageFormatter) describeNmapMessage(command ShellCommand, result ExecutionResult, stage messageStage) string {
	scanTarget := formatter.extractFirstNonFlagArgument(command.Details.Arguments)
	if len(scanTarget) == 0 {
		return emptyStringConstant
	}

	return formatter.selectStageMessage(
		stage,
		fmt.Sprintf(nmapScanStartTemplateConstant, scanTarget),
		fmt.Sprintf(nmapScanSuccessTemplateConstant, scanTarget),
		fmt.Sprintf(nmapScanFailureTemplateConstant, scanTarget, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
	)
}

func (formatter CommandMessageFormatter) selectStageMessage(stage messageStage, startMessage string, successMessage string, failureMessage string) string {
	switch stage {
	case messageStageStart:
		return startMessage
	case messageStageSuccess:
		return successMessage
	case messageStageFailure:
		return failureMessage
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return commandLabel
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		if strings.HasPrefix(argument, "-") {
			continue
		}
		return argument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}
