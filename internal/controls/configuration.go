package controls

import "strings"

const (
	defaultLogPathConstant         = "/var/log/pihole/pihole.log"
	defaultLogLineCountConstant    = 25
	defaultBackupDirectoryConstant = "/var/backups/pihole"
)

// CommandConfiguration captures persistent settings for the control commands.
type CommandConfiguration struct {
	LogPath         string `mapstructure:"log_path"`
	LogLineCount    int    `mapstructure:"log_lines"`
	BackupDirectory string `mapstructure:"backup_directory"`
}

// DefaultCommandConfiguration returns baseline configuration values for the control commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		LogPath:         defaultLogPathConstant,
		LogLineCount:    defaultLogLineCountConstant,
		BackupDirectory: defaultBackupDirectoryConstant,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.LogPath = strings.TrimSpace(configuration.LogPath)
	if len(sanitized.LogPath) == 0 {
		sanitized.LogPath = defaultLogPathConstant
	}

	if sanitized.LogLineCount <= 0 {
		sanitized.LogLineCount = defaultLogLineCountConstant
	}

	sanitized.BackupDirectory = strings.TrimSpace(configuration.BackupDirectory)
	if len(sanitized.BackupDirectory) == 0 {
		sanitized.BackupDirectory = defaultBackupDirectoryConstant
	}

	return sanitized
}
