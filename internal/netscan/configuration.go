package netscan

import "strings"

const (
	defaultNetworkCIDRConstant         = "192.168.1.0/24"
	defaultDNSServerAddressConstant    = "127.0.0.1"
	defaultQueryTimeoutSecondsConstant = 2
)

// CommandConfiguration captures persistent settings for the scan command.
type CommandConfiguration struct {
	NetworkCIDR         string `mapstructure:"network_cidr"`
	DNSServerAddress    string `mapstructure:"dns_server"`
	QueryTimeoutSeconds int    `mapstructure:"query_timeout_seconds"`
}

// DefaultCommandConfiguration returns baseline configuration values for the scan command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		NetworkCIDR:         defaultNetworkCIDRConstant,
		DNSServerAddress:    defaultDNSServerAddressConstant,
		QueryTimeoutSeconds: defaultQueryTimeoutSecondsConstant,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.NetworkCIDR = strings.TrimSpace(configuration.NetworkCIDR)
	if len(sanitized.NetworkCIDR) == 0 {
		sanitized.NetworkCIDR = defaultNetworkCIDRConstant
	}

	sanitized.DNSServerAddress = strings.TrimSpace(configuration.DNSServerAddress)
	if len(sanitized.DNSServerAddress) == 0 {
		sanitized.DNSServerAddress = defaultDNSServerAddressConstant
	}

	if sanitized.QueryTimeoutSeconds <= 0 {
		sanitized.QueryTimeoutSeconds = defaultQueryTimeoutSecondsConstant
	}

	return sanitized
}
