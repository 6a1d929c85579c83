package netconf

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	hostRecordAddressConstant     = "127.0.1.1"
	hostRecordTemplateConstant    = "127.0.1.1\t%s"
	hostnameFieldNameConstant     = "hostname"
	maximumHostnameLengthConstant = 63
)

var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// HostnameApplier pushes the hostname to the running system.
type HostnameApplier interface {
	ApplyHostname(executionContext context.Context, hostname string) error
}

// HostnameResult reports the files rewritten during one hostname change.
type HostnameResult struct {
	HostnameBackupPath string
	HostsBackupPath    string
}

// HostnameWriter rewrites the hostname file and the matching hosts record,
// then applies the change through the injected applier.
type HostnameWriter struct {
	hostnamePath string
	hostsPath    string
	applier      HostnameApplier
}

// NewHostnameWriter constructs a writer over the provided file paths and applier.
func NewHostnameWriter(hostnamePath string, hostsPath string, applier HostnameApplier) *HostnameWriter {
	return &HostnameWriter{hostnamePath: hostnamePath, hostsPath: hostsPath, applier: applier}
}

// Apply validates the hostname, rewrites both files with backups, and applies
// the change to the running system.
func (writer *HostnameWriter) Apply(executionContext context.Context, hostname string) (HostnameResult, error) {
	trimmedHostname := strings.TrimSpace(hostname)
	if validationError := validateHostname(trimmedHostname); validationError != nil {
		return HostnameResult{}, validationError
	}

	hostnameContents, hostnameReadError := os.ReadFile(writer.hostnamePath)
	if hostnameReadError != nil {
		return HostnameResult{}, &FileAccessError{Path: writer.hostnamePath, Cause: hostnameReadError}
	}
	hostsContents, hostsReadError := os.ReadFile(writer.hostsPath)
	if hostsReadError != nil {
		return HostnameResult{}, &FileAccessError{Path: writer.hostsPath, Cause: hostsReadError}
	}

	hostnameBackupPath := writer.hostnamePath + backupSuffixConstant
	if backupError := os.WriteFile(hostnameBackupPath, hostnameContents, configFilePermissionsConstant); backupError != nil {
		return HostnameResult{}, fmt.Errorf(configBackupErrorTemplateConstant, writer.hostnamePath, backupError)
	}
	hostsBackupPath := writer.hostsPath + backupSuffixConstant
	if backupError := os.WriteFile(hostsBackupPath, hostsContents, configFilePermissionsConstant); backupError != nil {
		return HostnameResult{}, fmt.Errorf(configBackupErrorTemplateConstant, writer.hostsPath, backupError)
	}

	if writeError := writeFileAtomically(writer.hostnamePath, []string{trimmedHostname}); writeError != nil {
		return HostnameResult{}, writeError
	}

	updatedHostsLines := rewriteHostRecord(splitLines(string(hostsContents)), trimmedHostname)
	if writeError := writeFileAtomically(writer.hostsPath, updatedHostsLines); writeError != nil {
		return HostnameResult{}, writeError
	}

	if writer.applier != nil {
		if applyError := writer.applier.ApplyHostname(executionContext, trimmedHostname); applyError != nil {
			return HostnameResult{}, applyError
		}
	}

	return HostnameResult{HostnameBackupPath: hostnameBackupPath, HostsBackupPath: hostsBackupPath}, nil
}

func validateHostname(hostname string) error {
	if len(hostname) == 0 {
		return &ValidationError{FieldName: hostnameFieldNameConstant, Message: "must not be empty"}
	}
	if len(hostname) > maximumHostnameLengthConstant {
		return &ValidationError{FieldName: hostnameFieldNameConstant, Message: "must be at most 63 characters"}
	}
	if !hostnamePattern.MatchString(hostname) {
		return &ValidationError{FieldName: hostnameFieldNameConstant, Message: "must contain only letters, digits, and interior hyphens"}
	}
	return nil
}

// rewriteHostRecord replaces the 127.0.1.1 record, or appends one when the
// hosts file has none.
func rewriteHostRecord(hostsLines []string, hostname string) []string {
	replacementRecord := fmt.Sprintf(hostRecordTemplateConstant, hostname)

	recordReplaced := false
	updatedLines := make([]string, 0, len(hostsLines)+1)
	for _, hostsLine := range hostsLines {
		recordFields := strings.Fields(hostsLine)
		if !recordReplaced && len(recordFields) > 0 && recordFields[0] == hostRecordAddressConstant {
			updatedLines = append(updatedLines, replacementRecord)
			recordReplaced = true
			continue
		}
		updatedLines = append(updatedLines, hostsLine)
	}

	if !recordReplaced {
		updatedLines = append(updatedLines, replacementRecord)
	}
	return updatedLines
}
