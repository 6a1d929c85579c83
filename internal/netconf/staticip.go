package netconf

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

const (
	managedBlockBeginMarkerConstant = "# BEGIN piu static-ip"
	managedBlockEndMarkerConstant   = "# END piu static-ip"

	interfaceDirectiveTemplateConstant = "interface %s"
	addressDirectiveTemplateConstant   = "static ip_address=%s"
	routersDirectiveTemplateConstant   = "static routers=%s"
	dnsDirectiveTemplateConstant       = "static domain_name_servers=%s"

	backupSuffixConstant              = ".backup"
	lineSeparatorConstant             = "\n"
	temporaryFilePatternConstant      = ".dhcpcd-*"
	configFilePermissionsConstant     = 0o644
	configWriteErrorTemplateConstant  = "unable to rewrite %s: %w"
	configBackupErrorTemplateConstant = "unable to back up %s: %w"

	interfaceFieldNameConstant  = "interface"
	addressFieldNameConstant    = "ip address"
	routersFieldNameConstant    = "router address"
	dnsServersFieldNameConstant = "dns servers"
)

// StaticIPResult reports the outcome of one managed-block application.
type StaticIPResult struct {
	Changed    bool
	BackupPath string
}

// StaticIPWriter maintains a single marker-delimited block in a dhcpcd
// configuration file, leaving every other line untouched.
type StaticIPWriter struct {
	configPath string
}

// NewStaticIPWriter constructs a writer for the provided dhcpcd configuration path.
func NewStaticIPWriter(configPath string) *StaticIPWriter {
	return &StaticIPWriter{configPath: configPath}
}

// ConfigPath returns the managed configuration file location.
func (writer *StaticIPWriter) ConfigPath() string {
	return writer.configPath
}

// BackupPath returns the single backup slot derived from the configuration path.
func (writer *StaticIPWriter) BackupPath() string {
	return writer.configPath + backupSuffixConstant
}

// Apply validates the settings and replaces or appends the managed block. The
// write is skipped entirely when the block already matches, making repeated
// applications of the same settings a no-op.
func (writer *StaticIPWriter) Apply(settings StaticIPSettings) (StaticIPResult, error) {
	if validationError := validateStaticIPSettings(settings); validationError != nil {
		return StaticIPResult{}, validationError
	}

	configContents, readError := os.ReadFile(writer.configPath)
	if readError != nil {
		return StaticIPResult{}, &FileAccessError{Path: writer.configPath, Cause: readError}
	}

	existingLines := splitLines(string(configContents))
	managedBlock := renderManagedBlock(settings)
	updatedLines, changed := replaceManagedBlock(existingLines, managedBlock)
	if !changed {
		return StaticIPResult{Changed: false}, nil
	}

	backupPath := writer.BackupPath()
	if backupError := os.WriteFile(backupPath, configContents, configFilePermissionsConstant); backupError != nil {
		return StaticIPResult{}, fmt.Errorf(configBackupErrorTemplateConstant, writer.configPath, backupError)
	}

	if writeError := writeFileAtomically(writer.configPath, updatedLines); writeError != nil {
		return StaticIPResult{}, writeError
	}

	return StaticIPResult{Changed: true, BackupPath: backupPath}, nil
}

func validateStaticIPSettings(settings StaticIPSettings) error {
	if len(strings.TrimSpace(settings.InterfaceName)) == 0 {
		return &ValidationError{FieldName: interfaceFieldNameConstant, Message: "must not be empty"}
	}

	if _, _, parseError := net.ParseCIDR(settings.AddressCIDR); parseError != nil {
		return &ValidationError{FieldName: addressFieldNameConstant, Message: "must be CIDR notation such as 192.168.1.2/24"}
	}

	if net.ParseIP(settings.RouterAddress) == nil {
		return &ValidationError{FieldName: routersFieldNameConstant, Message: "must be a valid IP address"}
	}

	if len(settings.DNSServers) == 0 {
		return &ValidationError{FieldName: dnsServersFieldNameConstant, Message: "at least one server is required"}
	}
	for _, dnsServer := range settings.DNSServers {
		if net.ParseIP(dnsServer) == nil {
			return &ValidationError{FieldName: dnsServersFieldNameConstant, Message: fmt.Sprintf("%s is not a valid IP address", dnsServer)}
		}
	}
	return nil
}

func renderManagedBlock(settings StaticIPSettings) []string {
	return []string{
		managedBlockBeginMarkerConstant,
		fmt.Sprintf(interfaceDirectiveTemplateConstant, settings.InterfaceName),
		fmt.Sprintf(addressDirectiveTemplateConstant, settings.AddressCIDR),
		fmt.Sprintf(routersDirectiveTemplateConstant, settings.RouterAddress),
		fmt.Sprintf(dnsDirectiveTemplateConstant, strings.Join(settings.DNSServers, " ")),
		managedBlockEndMarkerConstant,
	}
}

// replaceManagedBlock swaps the marker-delimited block in place, or appends it
// when no block exists. The second return value is false when the file already
// contains an identical block.
func replaceManagedBlock(existingLines []string, managedBlock []string) ([]string, bool) {
	beginIndex := -1
	endIndex := -1
	for lineIndex, existingLine := range existingLines {
		trimmedLine := strings.TrimSpace(existingLine)
		if trimmedLine == managedBlockBeginMarkerConstant && beginIndex < 0 {
			beginIndex = lineIndex
		}
		if trimmedLine == managedBlockEndMarkerConstant && beginIndex >= 0 {
			endIndex = lineIndex
			break
		}
	}

	if beginIndex >= 0 && endIndex > beginIndex {
		currentBlock := existingLines[beginIndex : endIndex+1]
		if equalLines(currentBlock, managedBlock) {
			return existingLines, false
		}

		updatedLines := make([]string, 0, len(existingLines)-len(currentBlock)+len(managedBlock))
		updatedLines = append(updatedLines, existingLines[:beginIndex]...)
		updatedLines = append(updatedLines, managedBlock...)
		updatedLines = append(updatedLines, existingLines[endIndex+1:]...)
		return updatedLines, true
	}

	updatedLines := existingLines
	if len(updatedLines) > 0 && len(strings.TrimSpace(updatedLines[len(updatedLines)-1])) != 0 {
		updatedLines = append(updatedLines, "")
	}
	return append(updatedLines, managedBlock...), true
}

func equalLines(leftLines []string, rightLines []string) bool {
	if len(leftLines) != len(rightLines) {
		return false
	}
	for lineIndex := range leftLines {
		if leftLines[lineIndex] != rightLines[lineIndex] {
			return false
		}
	}
	return true
}

func splitLines(contents string) []string {
	normalizedContents := strings.TrimSuffix(contents, lineSeparatorConstant)
	if len(normalizedContents) == 0 {
		return nil
	}
	return strings.Split(normalizedContents, lineSeparatorConstant)
}

func writeFileAtomically(targetPath string, lines []string) error {
	targetDirectory := filepath.Dir(targetPath)
	temporaryFile, temporaryError := os.CreateTemp(targetDirectory, temporaryFilePatternConstant)
	if temporaryError != nil {
		return fmt.Errorf(configWriteErrorTemplateConstant, targetPath, temporaryError)
	}
	temporaryPath := temporaryFile.Name()

	serializedContents := ""
	if len(lines) > 0 {
		serializedContents = strings.Join(lines, lineSeparatorConstant) + lineSeparatorConstant
	}

	if _, writeError := temporaryFile.WriteString(serializedContents); writeError != nil {
		temporaryFile.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf(configWriteErrorTemplateConstant, targetPath, writeError)
	}

	if closeError := temporaryFile.Close(); closeError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(configWriteErrorTemplateConstant, targetPath, closeError)
	}

	if chmodError := os.Chmod(temporaryPath, configFilePermissionsConstant); chmodError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(configWriteErrorTemplateConstant, targetPath, chmodError)
	}

	if renameError := os.Rename(temporaryPath, targetPath); renameError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(configWriteErrorTemplateConstant, targetPath, renameError)
	}

	return nil
}
