package audit

import "strings"

const (
	defaultStorePathConstant           = "/etc/pihole/adlists.list"
	defaultProbeTimeoutSecondsConstant = 10
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	StorePath           string `mapstructure:"store_path"`
	ProbeTimeoutSeconds int    `mapstructure:"probe_timeout_seconds"`
	AssumeYes           bool   `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		StorePath:           defaultStorePathConstant,
		ProbeTimeoutSeconds: defaultProbeTimeoutSecondsConstant,
		AssumeYes:           false,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.StorePath = strings.TrimSpace(configuration.StorePath)
	if len(sanitized.StorePath) == 0 {
		sanitized.StorePath = defaultStorePathConstant
	}

	if sanitized.ProbeTimeoutSeconds <= 0 {
		sanitized.ProbeTimeoutSeconds = defaultProbeTimeoutSecondsConstant
	}

	return sanitized
}
