package cli

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DeltaEpiales/PiU/internal/menu"
	"github.com/DeltaEpiales/PiU/internal/utils"
)

const (
	menuCommandNameConstant             = "menu"
	menuCommandShortDescriptionConstant = "Run the interactive console"
	menuCommandLongDescriptionConstant  = "menu presents every administration operation as a selectable list and keeps running until Quit or interrupt."

	statusItemLabelConstant     = "Status"
	auditItemLabelConstant      = "Audit adlists"
	gravityItemLabelConstant    = "Update gravity"
	enableItemLabelConstant     = "Enable blocking"
	disableItemLabelConstant    = "Disable blocking"
	statsItemLabelConstant      = "Query statistics"
	logsItemLabelConstant       = "Tail log"
	scanItemLabelConstant       = "Network scan"
	backupItemLabelConstant     = "Teleporter backup"
	restoreItemLabelConstant    = "Teleporter restore"
	staticIPItemLabelConstant   = "Static IP"
	hostnameItemLabelConstant   = "Hostname"
	unknownCommandTemplateError = "unknown subcommand %s"

	disableDurationPromptConstant = "Disable duration (blank for permanent)"
	restoreArchivePromptConstant  = "Archive path"
	hostnamePromptConstant        = "New hostname"
	addressPromptConstant         = "Static address (CIDR)"
	routerPromptConstant          = "Router address"
	dnsServersPromptConstant      = "DNS servers (comma separated)"
)

func (application *Application) buildMenuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   menuCommandNameConstant,
		Short: menuCommandShortDescriptionConstant,
		Long:  menuCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runMenu(command)
		},
	}
}

func (application *Application) runMenu(command *cobra.Command) error {
	selector := menu.NewPromptUISelector()
	menuService := menu.NewService(
		selector,
		application.menuItems(command),
		utils.NewFlushingWriter(command.OutOrStdout()),
		application.logger,
	)
	return menuService.Run(command.Context())
}

// menuItems maps every console entry onto the subcommand implementing it, so
// the menu and the CLI share one code path per operation.
func (application *Application) menuItems(menuCommand *cobra.Command) []menu.Item {
	return []menu.Item{
		{Label: statusItemLabelConstant, Action: application.dispatchAction(menuCommand, "status", nil)},
		{Label: auditItemLabelConstant, Action: application.dispatchAction(menuCommand, "audit", nil)},
		{Label: gravityItemLabelConstant, Action: application.dispatchAction(menuCommand, "gravity", nil)},
		{Label: enableItemLabelConstant, Action: application.dispatchAction(menuCommand, "enable", nil)},
		{Label: disableItemLabelConstant, Action: func(executionContext context.Context) error {
			duration, promptError := promptText(disableDurationPromptConstant, true)
			if promptError != nil {
				return promptError
			}
			return application.dispatchSubcommand(executionContext, menuCommand, "disable", nil, map[string]string{"for": duration})
		}},
		{Label: statsItemLabelConstant, Action: application.dispatchAction(menuCommand, "stats", nil)},
		{Label: logsItemLabelConstant, Action: application.dispatchAction(menuCommand, "logs", nil)},
		{Label: scanItemLabelConstant, Action: application.dispatchAction(menuCommand, "scan", nil)},
		{Label: backupItemLabelConstant, Action: application.dispatchAction(menuCommand, "backup", nil)},
		{Label: restoreItemLabelConstant, Action: func(executionContext context.Context) error {
			archivePath, promptError := promptText(restoreArchivePromptConstant, false)
			if promptError != nil {
				return promptError
			}
			return application.dispatchSubcommand(executionContext, menuCommand, "restore", []string{archivePath}, nil)
		}},
		{Label: staticIPItemLabelConstant, Action: func(executionContext context.Context) error {
			addressCIDR, addressError := promptText(addressPromptConstant, false)
			if addressError != nil {
				return addressError
			}
			routerAddress, routerError := promptText(routerPromptConstant, false)
			if routerError != nil {
				return routerError
			}
			dnsServers, dnsError := promptText(dnsServersPromptConstant, false)
			if dnsError != nil {
				return dnsError
			}
			return application.dispatchSubcommand(executionContext, menuCommand, "static-ip", nil, map[string]string{
				"address": addressCIDR,
				"router":  routerAddress,
				"dns":     dnsServers,
			})
		}},
		{Label: hostnameItemLabelConstant, Action: func(executionContext context.Context) error {
			requestedHostname, promptError := promptText(hostnamePromptConstant, false)
			if promptError != nil {
				return promptError
			}
			return application.dispatchSubcommand(executionContext, menuCommand, "hostname", []string{requestedHostname}, nil)
		}},
	}
}

func (application *Application) dispatchAction(menuCommand *cobra.Command, subcommandName string, arguments []string) func(context.Context) error {
	return func(executionContext context.Context) error {
		return application.dispatchSubcommand(executionContext, menuCommand, subcommandName, arguments, nil)
	}
}

// dispatchSubcommand runs one named subcommand in place, sharing the menu's
// terminal streams.
func (application *Application) dispatchSubcommand(executionContext context.Context, menuCommand *cobra.Command, subcommandName string, arguments []string, flagValues map[string]string) error {
	var targetCommand *cobra.Command
	for _, candidateCommand := range application.rootCommand.Commands() {
		if candidateCommand.Name() == subcommandName {
			targetCommand = candidateCommand
			break
		}
	}
	if targetCommand == nil {
		return fmt.Errorf(unknownCommandTemplateError, subcommandName)
	}

	for flagName, flagValue := range flagValues {
		if setError := targetCommand.Flags().Set(flagName, flagValue); setError != nil {
			return setError
		}
	}

	targetCommand.SetContext(executionContext)
	targetCommand.SetIn(menuCommand.InOrStdin())
	targetCommand.SetOut(menuCommand.OutOrStdout())
	targetCommand.SetErr(menuCommand.ErrOrStderr())

	return targetCommand.RunE(targetCommand, arguments)
}

// promptText reads one line of input; blank responses are rejected unless allowed.
func promptText(label string, allowEmpty bool) (string, error) {
	textPrompt := promptui.Prompt{Label: label}
	if !allowEmpty {
		textPrompt.Validate = func(input string) error {
			if len(input) == 0 {
				return fmt.Errorf("%s must not be empty", label)
			}
			return nil
		}
	}
	return textPrompt.Run()
}
