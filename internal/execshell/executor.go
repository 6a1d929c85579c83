package execshell

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	piholeToolNameConstant      = "pihole"
	tailToolNameConstant        = "tail"
	systemctlToolNameConstant   = "systemctl"
	nmapToolNameConstant        = "nmap"
	hostnamectlToolNameConstant = "hostnamectl"

	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	commandFailedTemplateConstant             = "%s command failed"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables invoked through the executor.
const (
	CommandPihole      CommandName = CommandName(piholeToolNameConstant)
	CommandTail        CommandName = CommandName(tailToolNameConstant)
	CommandSystemctl   CommandName = CommandName(systemctlToolNameConstant)
	CommandNmap        CommandName = CommandName(nmapToolNameConstant)
	CommandHostnamectl CommandName = CommandName(hostnamectlToolNameConstant)
)

// CommandDetails describes a single invocation of an executable.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand couples a CommandName with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel errors reported during executor construction.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trailing standard error output.
func (failure *CommandFailedError) Error() string {
	return CommandMessageFormatter{}.BuildFailureMessage(failure.Command, failure.Result)
}

// ShellExecutor coordinates command execution, logging, and observer notifications.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor from the provided logger and runner.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	var observer CommandEventObserver = noopCommandEventObserver{}
	if len(observers) > 0 && observers[0] != nil {
		observer = observers[0]
	}

	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  observer,
		formatter: CommandMessageFormatter{},
	}, nil
}

// Execute runs the supplied command, notifying observers and logging lifecycle events.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.observer.CommandStarted(command)
	executor.logger.Debug(executor.formatter.BuildStartedMessage(command))

	executionResult, executionError := executor.runner.Run(executionContext, command)
	if executionError != nil {
		executor.observer.CommandExecutionFailed(command, executionError)
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, executionError))
		return ExecutionResult{}, executionError
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode == 0 {
		executor.logger.Debug(executor.formatter.BuildSuccessMessage(command))
		return executionResult, nil
	}

	executor.logger.Warn(executor.formatter.BuildFailureMessage(command, executionResult))
	return executionResult, &CommandFailedError{Command: command, Result: executionResult}
}

// ExecutePihole runs the pihole management CLI with the provided details.
func (executor *ShellExecutor) ExecutePihole(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandPihole, Details: details})
}

// ExecuteTail runs tail with the provided details.
func (executor *ShellExecutor) ExecuteTail(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandTail, Details: details})
}

// ExecuteSystemctl runs systemctl with the provided details.
func (executor *ShellExecutor) ExecuteSystemctl(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandSystemctl, Details: details})
}

// ExecuteNmap runs nmap with the provided details.
func (executor *ShellExecutor) ExecuteNmap(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandNmap, Details: details})
}

// ExecuteHostnamectl runs hostnamectl with the provided details.
func (executor *ShellExecutor) ExecuteHostnamectl(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandHostnamectl, Details: details})
}
