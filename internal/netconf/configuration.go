package netconf

import "strings"

const (
	defaultDHCPConfigPathConstant = "/etc/dhcpcd.conf"
	defaultHostnamePathConstant   = "/etc/hostname"
	defaultHostsPathConstant      = "/etc/hosts"
	defaultInterfaceNameConstant  = "eth0"
)

// CommandConfiguration captures persistent settings for the network commands.
type CommandConfiguration struct {
	DHCPConfigPath string `mapstructure:"dhcp_config_path"`
	HostnamePath   string `mapstructure:"hostname_path"`
	HostsPath      string `mapstructure:"hosts_path"`
	InterfaceName  string `mapstructure:"interface"`
}

// DefaultCommandConfiguration returns baseline configuration values for the network commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DHCPConfigPath: defaultDHCPConfigPathConstant,
		HostnamePath:   defaultHostnamePathConstant,
		HostsPath:      defaultHostsPathConstant,
		InterfaceName:  defaultInterfaceNameConstant,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.DHCPConfigPath = strings.TrimSpace(configuration.DHCPConfigPath)
	if len(sanitized.DHCPConfigPath) == 0 {
		sanitized.DHCPConfigPath = defaultDHCPConfigPathConstant
	}

	sanitized.HostnamePath = strings.TrimSpace(configuration.HostnamePath)
	if len(sanitized.HostnamePath) == 0 {
		sanitized.HostnamePath = defaultHostnamePathConstant
	}

	sanitized.HostsPath = strings.TrimSpace(configuration.HostsPath)
	if len(sanitized.HostsPath) == 0 {
		sanitized.HostsPath = defaultHostsPathConstant
	}

	sanitized.InterfaceName = strings.TrimSpace(configuration.InterfaceName)
	if len(sanitized.InterfaceName) == 0 {
		sanitized.InterfaceName = defaultInterfaceNameConstant
	}

	return sanitized
}
