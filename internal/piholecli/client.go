package piholecli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DeltaEpiales/PiU/internal/execshell"
)

const (
	statusSubcommandConstant             = "status"
	enableSubcommandConstant             = "enable"
	disableSubcommandConstant            = "disable"
	gravityFlagConstant                  = "-g"
	versionFlagConstant                  = "-v"
	adminFlagConstant                    = "-a"
	teleporterFlagConstant               = "-t"
	debugFlagConstant                    = "-d"
	debugAutomaticFlagConstant           = "-a"
	allowSubcommandConstant              = "allow"
	denySubcommandConstant               = "deny"
	teleporterImportSubcommandConstant   = "import"
	tailLineCountFlagConstant            = "-n"
	ftlServiceUnitNameConstant           = "pihole-FTL"
	systemctlRestartVerbConstant         = "restart"
	blockingEnabledMarkerConstant        = "enabled"
	blockingDisabledMarkerConstant       = "disabled"
	executorNotConfiguredMessageConstant = "pihole executor not configured"
	requiredValueMessageConstant         = "value required"
	invalidInputErrorTemplateConstant    = "%s: %s"
	operationErrorTemplateConstant       = "%s operation failed"
	operationErrorCauseTemplateConstant  = "%s operation failed: %s"
	domainFieldNameConstant              = "domain"
	archiveFieldNameConstant             = "archive"
	logPathFieldNameConstant             = "log_path"
	lineCountFieldNameConstant           = "line_count"
	hostnameFieldNameConstant            = "hostname"
	setHostnameVerbConstant              = "set-hostname"

	statusOperationNameConstant            = OperationName("Status")
	enableOperationNameConstant            = OperationName("Enable")
	disableOperationNameConstant           = OperationName("Disable")
	updateGravityOperationNameConstant     = OperationName("UpdateGravity")
	versionOperationNameConstant           = OperationName("Version")
	allowDomainOperationNameConstant       = OperationName("AllowDomain")
	denyDomainOperationNameConstant        = OperationName("DenyDomain")
	teleporterBackupOperationNameConstant  = OperationName("TeleporterBackup")
	teleporterRestoreOperationNameConstant = OperationName("TeleporterRestore")
	debugDumpOperationNameConstant         = OperationName("DebugDump")
	tailLogOperationNameConstant           = OperationName("TailLog")
	restartDNSOperationNameConstant        = OperationName("RestartDNS")
	setHostnameOperationNameConstant       = OperationName("SetHostname")
)

// OperationName describes a named pihole CLI workflow supported by the client.
type OperationName string

// BlockingState enumerates the observable blocking states of the appliance.
type BlockingState string

// Blocking state values reported by pihole status.
const (
	BlockingStateEnabled  BlockingState = BlockingState(blockingEnabledMarkerConstant)
	BlockingStateDisabled BlockingState = BlockingState(blockingDisabledMarkerConstant)
	BlockingStateUnknown  BlockingState = BlockingState("unknown")
)

// StatusReport captures the raw status output together with the parsed blocking state.
type StatusReport struct {
	Blocking BlockingState
	Raw      string
}

// CommandExecutor is the minimal interface required from execshell.ShellExecutor.
type CommandExecutor interface {
	ExecutePihole(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteTail(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteSystemctl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteHostnamectl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates pihole CLI invocations through execshell.
type Client struct {
	executor CommandExecutor
}

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for pihole CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// NewClient constructs a pihole CLI client.
func NewClient(executor CommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// Status reports whether DNS blocking is currently enabled.
func (client *Client) Status(executionContext context.Context) (StatusReport, error) {
	commandDetails := execshell.CommandDetails{Arguments: []string{statusSubcommandConstant}}

	executionResult, executionError := client.executor.ExecutePihole(executionContext, commandDetails)
	if executionError != nil {
		return StatusReport{}, OperationError{Operation: statusOperationNameConstant, Cause: executionError}
	}

	return StatusReport{
		Blocking: parseBlockingState(executionResult.StandardOutput),
		Raw:      strings.TrimSpace(executionResult.StandardOutput),
	}, nil
}

// Enable turns DNS blocking on.
func (client *Client) Enable(executionContext context.Context) error {
	commandDetails := execshell.CommandDetails{Arguments: []string{enableSubcommandConstant}}
	if _, executionError := client.executor.ExecutePihole(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: enableOperationNameConstant, Cause: executionError}
	}
	return nil
}

// Disable turns DNS blocking off, optionally for a bounded duration such as "5m".
func (client *Client) Disable(executionContext context.Context, duration string) error {
	arguments := []string{disableSubcommandConstant}
	trimmedDuration := strings.TrimSpace(duration)
	if len(trimmedDuration) > 0 {
		arguments = append(arguments, trimmedDuration)
	}

	commandDetails := execshell.CommandDetails{Arguments: arguments}
	if _, executionError := client.executor.ExecutePihole(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: disableOperationNameConstant, Cause: executionError}
	}
	return nil
}

// UpdateGravity rebuilds the consolidated gravity block database.
func (client *Client) UpdateGravity(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{Arguments: []string{gravityFlagConstant}}

	executionResult, executionError := client.executor.ExecutePihole(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: updateGravityOperationNameConstant, Cause: executionError}
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// Version reports the component versions of the appliance.
func (client *Client) Version(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{Arguments: []string{versionFlagConstant}}

	executionResult, executionError := client.executor.ExecutePihole(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: versionOperationNameConstant, Cause: executionError}
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// AllowDomain appends a domain to the allow list.
func (client *Client) AllowDomain(executionContext context.Context, domain string) error {
	trimmedDomain := strings.TrimSpace(domain)
	if len(trimmedDomain) == 0 {
		return InvalidInputError{FieldName: domainFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{Arguments: []string{allowSubcommandConstant, trimmedDomain}}
	if _, executionError := client.executor.ExecutePihole(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: allowDomainOperationNameConstant, Cause: executionError}
	}
	return nil
}

// DenyDomain appends a domain to the deny list.
func (client *Client) DenyDomain(executionContext context.Context, domain string) error {
	trimmedDomain := strings.TrimSpace(domain)
	if len(trimmedDomain) == 0 {
		return InvalidInputError{FieldName: domainFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{Arguments: []string{denySubcommandConstant, trimmedDomain}}
	if _, executionError := client.executor.ExecutePihole(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: denyDomainOperationNameConstant, Cause: executionError}
	}
	return nil
}

// TeleporterBackup writes a teleporter archive to the provided path.
func (client *Client) TeleporterBackup(executionContext context.Context, archivePath string) error {
	trimmedArchivePath := strings.TrimSpace(archivePath)
	if len(trimmedArchivePath) == 0 {
		return InvalidInputError{FieldName: archiveFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{Arguments: []string{adminFlagConstant, teleporterFlagConstant, trimmedArchivePath}}
	if _, executionError := client.executor.ExecutePihole(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: teleporterBackupOperationNameConstant, Cause: executionError}
	}
	return nil
}

// TeleporterRestore imports settings from a previously written teleporter archive.
func (client *Client) TeleporterRestore(executionContext context.Context, archivePath string) error {
	trimmedArchivePath := strings.TrimSpace(archivePath)
	if len(trimmedArchivePath) == 0 {
		return InvalidInputError{FieldName: archiveFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{Arguments: []string{adminFlagConstant, teleporterFlagConstant, trimmedArchivePath, teleporterImportSubcommandConstant}}
	if _, executionError := client.executor.ExecutePihole(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: teleporterRestoreOperationNameConstant, Cause: executionError}
	}
	return nil
}

// DebugDump produces the non-interactive diagnostic dump.
func (client *Client) DebugDump(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{Arguments: []string{debugFlagConstant, debugAutomaticFlagConstant}}

	executionResult, executionError := client.executor.ExecutePihole(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: debugDumpOperationNameConstant, Cause: executionError}
	}
	return executionResult.StandardOutput, nil
}

// TailLog returns the trailing lines of the appliance query log file.
func (client *Client) TailLog(executionContext context.Context, logPath string, lineCount int) (string, error) {
	trimmedLogPath := strings.TrimSpace(logPath)
	if len(trimmedLogPath) == 0 {
		return "", InvalidInputError{FieldName: logPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if lineCount <= 0 {
		return "", InvalidInputError{FieldName: lineCountFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{Arguments: []string{tailLineCountFlagConstant, strconv.Itoa(lineCount), trimmedLogPath}}

	executionResult, executionError := client.executor.ExecuteTail(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: tailLogOperationNameConstant, Cause: executionError}
	}
	return executionResult.StandardOutput, nil
}

// RestartDNS restarts the FTL resolver service.
func (client *Client) RestartDNS(executionContext context.Context) error {
	commandDetails := execshell.CommandDetails{Arguments: []string{systemctlRestartVerbConstant, ftlServiceUnitNameConstant}}
	if _, executionError := client.executor.ExecuteSystemctl(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: restartDNSOperationNameConstant, Cause: executionError}
	}
	return nil
}

// ApplyHostname makes the supplied hostname active through hostnamectl.
func (client *Client) ApplyHostname(executionContext context.Context, hostname string) error {
	trimmedHostname := strings.TrimSpace(hostname)
	if len(trimmedHostname) == 0 {
		return InvalidInputError{FieldName: hostnameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{Arguments: []string{setHostnameVerbConstant, trimmedHostname}}
	if _, executionError := client.executor.ExecuteHostnamectl(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: setHostnameOperationNameConstant, Cause: executionError}
	}
	return nil
}

func parseBlockingState(statusOutput string) BlockingState {
	loweredOutput := strings.ToLower(statusOutput)
	switch {
	case strings.Contains(loweredOutput, blockingDisabledMarkerConstant):
		return BlockingStateDisabled
	case strings.Contains(loweredOutput, blockingEnabledMarkerConstant):
		return BlockingStateEnabled
	default:
		return BlockingStateUnknown
	}
}
