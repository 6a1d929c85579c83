package audit

import "context"

// ListStore exposes the persisted adlist source file used by the audit run.
type ListStore interface {
	Path() string
	BackupPath() string
	Load() ([]string, error)
	Write(lines []string) error
	Backup() (string, error)
}

// Prober classifies a single adlist source as reachable or unreachable.
type Prober interface {
	Check(executionContext context.Context, source string) ProbeResult
}

// ConfirmationPrompter prompts the operator for confirmation before mutations.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}
