package netconf

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	hostnameCommandNameConstant     = "hostname <name>"
	hostnameShortDescription        = "Rename the appliance"
	hostnameLongDescriptionConstant = "hostname rewrites the hostname file and the matching hosts record, backs both up, and applies the change with hostnamectl."
	hostnamePlanTemplateConstant    = "Will rename the appliance to %s.\n"
	hostnamePromptTemplateConstant  = "Rename to %s? [y/N]: "
	hostnameDeclinedMessageConstant = "Leaving hostname unchanged.\n"
	hostnameAppliedTemplateConstant = "Hostname set to %s; previous files saved to %s and %s.\n"
	hostnameStartedMessageConstant  = "hostname change requested"
	logFieldHostnameConstant        = "hostname"
)

// HostnameCommandBuilder assembles the hostname cobra command.
type HostnameCommandBuilder struct {
	LoggerProvider        StaticIPLoggerProvider
	ConfigurationProvider StaticIPConfigurationProvider
	Applier               HostnameApplier
	Writer                *HostnameWriter
}

// Build constructs the cobra command for renaming the appliance.
func (builder *HostnameCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   hostnameCommandNameConstant,
		Short: hostnameShortDescription,
		Long:  hostnameLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagAssumeYesNameConstant, false, flagAssumeYesDescriptionConstant)

	return command, nil
}

func (builder *HostnameCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().sanitize()
	}

	requestedHostname := arguments[0]
	assumeYes, _ := command.Flags().GetBool(flagAssumeYesNameConstant)

	if logger := builder.resolveLogger(); logger != nil {
		logger.Info(hostnameStartedMessageConstant, zap.String(logFieldHostnameConstant, requestedHostname))
	}

	writer := builder.Writer
	if writer == nil {
		writer = NewHostnameWriter(configuration.HostnamePath, configuration.HostsPath, builder.Applier)
	}

	fmt.Fprintf(command.OutOrStdout(), hostnamePlanTemplateConstant, requestedHostname)

	if !assumeYes {
		confirmed, confirmError := readConfirmation(command.InOrStdin(), command.OutOrStdout(),
			fmt.Sprintf(hostnamePromptTemplateConstant, requestedHostname))
		if confirmError != nil {
			return confirmError
		}
		if !confirmed {
			fmt.Fprint(command.OutOrStdout(), hostnameDeclinedMessageConstant)
			return nil
		}
	}

	applyResult, applyError := writer.Apply(command.Context(), requestedHostname)
	if applyError != nil {
		return applyError
	}

	fmt.Fprintf(command.OutOrStdout(), hostnameAppliedTemplateConstant,
		requestedHostname, applyResult.HostnameBackupPath, applyResult.HostsBackupPath)
	return nil
}

func (builder *HostnameCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
