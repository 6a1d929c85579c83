package controls

import "context"

// ApplianceClient drives the appliance operations behind the control commands.
type ApplianceClient interface {
	Enable(executionContext context.Context) error
	Disable(executionContext context.Context, duration string) error
	UpdateGravity(executionContext context.Context) (string, error)
	TailLog(executionContext context.Context, logPath string, lineCount int) (string, error)
	TeleporterBackup(executionContext context.Context, archivePath string) error
	TeleporterRestore(executionContext context.Context, archivePath string) error
}
