package querylog

import "strings"

const (
	defaultDatabasePathConstant = "/etc/pihole/pihole-FTL.db"
	defaultWindowHoursConstant  = 24
	defaultLimitConstant        = 10
)

// CommandConfiguration captures persistent settings for the stats command.
type CommandConfiguration struct {
	DatabasePath string `mapstructure:"database_path"`
	WindowHours  int    `mapstructure:"window_hours"`
	Limit        int    `mapstructure:"limit"`
}

// DefaultCommandConfiguration returns baseline configuration values for the stats command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DatabasePath: defaultDatabasePathConstant,
		WindowHours:  defaultWindowHoursConstant,
		Limit:        defaultLimitConstant,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.DatabasePath = strings.TrimSpace(configuration.DatabasePath)
	if len(sanitized.DatabasePath) == 0 {
		sanitized.DatabasePath = defaultDatabasePathConstant
	}

	if sanitized.WindowHours < 0 {
		sanitized.WindowHours = defaultWindowHoursConstant
	}

	if sanitized.Limit <= 0 {
		sanitized.Limit = defaultLimitConstant
	}

	return sanitized
}
