package netscan

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandNameConstant              = "scan"
	commandShortDescriptionConstant  = "Discover hosts on the local network"
	commandLongDescriptionConstant   = "scan sweeps a network range with nmap and resolves names for the discovered hosts against the appliance's DNS server."
	flagCIDRNameConstant             = "cidr"
	flagCIDRDescriptionConstant      = "Network range to sweep in CIDR notation."
	flagDNSServerNameConstant        = "dns-server"
	flagDNSServerDescriptionConstant = "DNS server answering PTR lookups."
	flagTimeoutNameConstant          = "timeout"
	flagTimeoutDescriptionConstant   = "Per-lookup timeout in seconds."
	scanStartedMessageConstant       = "network scan requested"
	logFieldNetworkCIDRConstant      = "network_cidr"
)

// ErrDiscovererNotConfigured reports a builder missing both a discoverer and an executor.
var ErrDiscovererNotConfigured = errors.New("netscan: no host discoverer or command executor configured")

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the scan command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Discoverer            HostDiscoverer
	Resolver              ReverseResolver
	Executor              CommandExecutor
}

// Build constructs the cobra command for the network sweep.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagCIDRNameConstant, "", flagCIDRDescriptionConstant)
	command.Flags().String(flagDNSServerNameConstant, "", flagDNSServerDescriptionConstant)
	command.Flags().Int(flagTimeoutNameConstant, 0, flagTimeoutDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().sanitize()
	}

	networkCIDR, _ := command.Flags().GetString(flagCIDRNameConstant)
	if len(networkCIDR) == 0 {
		networkCIDR = configuration.NetworkCIDR
	}

	dnsServerAddress, _ := command.Flags().GetString(flagDNSServerNameConstant)
	if len(dnsServerAddress) == 0 {
		dnsServerAddress = configuration.DNSServerAddress
	}

	timeoutSeconds, _ := command.Flags().GetInt(flagTimeoutNameConstant)
	if timeoutSeconds <= 0 {
		timeoutSeconds = configuration.QueryTimeoutSeconds
	}

	logger := builder.resolveLogger()
	logger.Info(scanStartedMessageConstant, zap.String(logFieldNetworkCIDRConstant, networkCIDR))

	discoverer := builder.Discoverer
	if discoverer == nil {
		if builder.Executor == nil {
			return ErrDiscovererNotConfigured
		}
		discoverer = NewScanner(builder.Executor)
	}

	resolver := builder.Resolver
	if resolver == nil {
		resolver = NewDNSReverseResolver(dnsServerAddress, time.Duration(timeoutSeconds)*time.Second)
	}

	service := NewService(discoverer, resolver, command.OutOrStdout())
	_, scanError := service.Scan(command.Context(), ScanOptions{
		NetworkCIDR:      networkCIDR,
		DNSServerAddress: dnsServerAddress,
	})
	return scanError
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
