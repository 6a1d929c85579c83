package netconf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	staticIPCommandNameConstant      = "static-ip"
	staticIPShortDescriptionConstant = "Declare a static IP lease for the appliance"
	staticIPLongDescriptionConstant  = "static-ip writes a marker-delimited static lease block into the dhcpcd configuration, replacing any previous block and backing up the file first."
	flagInterfaceNameConstant        = "interface"
	flagInterfaceDescriptionConstant = "Network interface to configure."
	flagAddressNameConstant          = "address"
	flagAddressDescriptionConstant   = "Static address in CIDR notation, for example 192.168.1.2/24."
	flagRouterNameConstant           = "router"
	flagRouterDescriptionConstant    = "Default gateway address."
	flagDNSNameConstant              = "dns"
	flagDNSDescriptionConstant       = "DNS server addresses for the lease."
	flagAssumeYesNameConstant        = "yes"
	flagAssumeYesDescriptionConstant = "Apply the change without prompting."
	staticIPPlanTemplateConstant     = "Will declare %s as %s (router %s, dns %s) in %s.\n"
	staticIPPromptTemplateConstant   = "Rewrite %s? [y/N]: "
	staticIPDeclinedMessageConstant  = "Leaving configuration unchanged.\n"
	staticIPUnchangedMessageConstant = "Configuration already up to date.\n"
	staticIPAppliedTemplateConstant  = "Managed block written to %s; previous contents saved to %s.\n"
	staticIPRestartAdviceConstant    = "Restart networking or reboot for the change to take effect.\n"
	staticIPStartedMessageConstant   = "static ip change requested"
	logFieldInterfaceConstant        = "interface"
	logFieldAddressConstant          = "address"
	affirmativeShortResponseConstant = "y"
	affirmativeLongResponseConstant  = "yes"
)

// StaticIPLoggerProvider supplies a zap logger for command execution.
type StaticIPLoggerProvider func() *zap.Logger

// StaticIPConfigurationProvider supplies persisted configuration for the network commands.
type StaticIPConfigurationProvider func() CommandConfiguration

// StaticIPCommandBuilder assembles the static-ip cobra command.
type StaticIPCommandBuilder struct {
	LoggerProvider        StaticIPLoggerProvider
	ConfigurationProvider StaticIPConfigurationProvider
	Writer                *StaticIPWriter
}

// Build constructs the cobra command for static lease declaration.
func (builder *StaticIPCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   staticIPCommandNameConstant,
		Short: staticIPShortDescriptionConstant,
		Long:  staticIPLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagInterfaceNameConstant, "", flagInterfaceDescriptionConstant)
	command.Flags().String(flagAddressNameConstant, "", flagAddressDescriptionConstant)
	command.Flags().String(flagRouterNameConstant, "", flagRouterDescriptionConstant)
	command.Flags().StringSlice(flagDNSNameConstant, nil, flagDNSDescriptionConstant)
	command.Flags().Bool(flagAssumeYesNameConstant, false, flagAssumeYesDescriptionConstant)

	return command, nil
}

func (builder *StaticIPCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().sanitize()
	}

	interfaceName, _ := command.Flags().GetString(flagInterfaceNameConstant)
	if len(interfaceName) == 0 {
		interfaceName = configuration.InterfaceName
	}
	addressCIDR, _ := command.Flags().GetString(flagAddressNameConstant)
	routerAddress, _ := command.Flags().GetString(flagRouterNameConstant)
	dnsServers, _ := command.Flags().GetStringSlice(flagDNSNameConstant)
	assumeYes, _ := command.Flags().GetBool(flagAssumeYesNameConstant)

	settings := StaticIPSettings{
		InterfaceName: interfaceName,
		AddressCIDR:   addressCIDR,
		RouterAddress: routerAddress,
		DNSServers:    dnsServers,
	}

	writer := builder.Writer
	if writer == nil {
		writer = NewStaticIPWriter(configuration.DHCPConfigPath)
	}

	if logger := builder.resolveLogger(); logger != nil {
		logger.Info(staticIPStartedMessageConstant,
			zap.String(logFieldInterfaceConstant, settings.InterfaceName),
			zap.String(logFieldAddressConstant, settings.AddressCIDR),
		)
	}

	fmt.Fprintf(command.OutOrStdout(), staticIPPlanTemplateConstant,
		settings.InterfaceName, settings.AddressCIDR, settings.RouterAddress,
		strings.Join(settings.DNSServers, " "), writer.ConfigPath(),
	)

	if !assumeYes {
		confirmed, confirmError := readConfirmation(command.InOrStdin(), command.OutOrStdout(),
			fmt.Sprintf(staticIPPromptTemplateConstant, writer.ConfigPath()))
		if confirmError != nil {
			return confirmError
		}
		if !confirmed {
			fmt.Fprint(command.OutOrStdout(), staticIPDeclinedMessageConstant)
			return nil
		}
	}

	applyResult, applyError := writer.Apply(settings)
	if applyError != nil {
		return applyError
	}

	if !applyResult.Changed {
		fmt.Fprint(command.OutOrStdout(), staticIPUnchangedMessageConstant)
		return nil
	}

	fmt.Fprintf(command.OutOrStdout(), staticIPAppliedTemplateConstant, writer.ConfigPath(), applyResult.BackupPath)
	fmt.Fprint(command.OutOrStdout(), staticIPRestartAdviceConstant)
	return nil
}

func (builder *StaticIPCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// readConfirmation writes the prompt and interprets affirmative y/yes responses.
func readConfirmation(input io.Reader, output io.Writer, prompt string) (bool, error) {
	if _, writeError := io.WriteString(output, prompt); writeError != nil {
		return false, writeError
	}

	response, readError := bufio.NewReader(input).ReadString('\n')
	if readError != nil && readError != io.EOF {
		return false, readError
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
		return true, nil
	default:
		return false, nil
	}
}
