package netconf_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeltaEpiales/PiU/internal/netconf"
)

func TestStaticIPCommandAppliesAfterConfirmation(testInstance *testing.T) {
	configPath := filepath.Join(testInstance.TempDir(), "dhcpcd.conf")
	require.NoError(testInstance, os.WriteFile(configPath, []byte("hostname\n"), 0o644))

	builder := &netconf.StaticIPCommandBuilder{
		ConfigurationProvider: func() netconf.CommandConfiguration {
			return netconf.CommandConfiguration{DHCPConfigPath: configPath, InterfaceName: "eth0"}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetIn(strings.NewReader("y\n"))
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	require.NoError(testInstance, command.Flags().Set("address", "192.168.1.2/24"))
	require.NoError(testInstance, command.Flags().Set("router", "192.168.1.1"))
	require.NoError(testInstance, command.Flags().Set("dns", "127.0.0.1"))

	require.NoError(testInstance, command.RunE(command, nil))

	configContents, readError := os.ReadFile(configPath)
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(configContents), "static ip_address=192.168.1.2/24")
	require.Contains(testInstance, outputBuffer.String(), "Managed block written to "+configPath)
	require.Contains(testInstance, outputBuffer.String(), "Restart networking or reboot")
}

func TestStaticIPCommandDeclinedLeavesFileUntouched(testInstance *testing.T) {
	configPath := filepath.Join(testInstance.TempDir(), "dhcpcd.conf")
	require.NoError(testInstance, os.WriteFile(configPath, []byte("hostname\n"), 0o644))

	builder := &netconf.StaticIPCommandBuilder{
		ConfigurationProvider: func() netconf.CommandConfiguration {
			return netconf.CommandConfiguration{DHCPConfigPath: configPath}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetIn(strings.NewReader("n\n"))
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	require.NoError(testInstance, command.Flags().Set("address", "192.168.1.2/24"))
	require.NoError(testInstance, command.Flags().Set("router", "192.168.1.1"))
	require.NoError(testInstance, command.Flags().Set("dns", "127.0.0.1"))

	require.NoError(testInstance, command.RunE(command, nil))

	configContents, readError := os.ReadFile(configPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "hostname\n", string(configContents))
	require.Contains(testInstance, outputBuffer.String(), "Leaving configuration unchanged.")
}

func TestHostnameCommandAppliesWithAssumeYes(testInstance *testing.T) {
	hostnamePath, hostsPath := newHostFiles(testInstance, "raspberrypi\n", "127.0.0.1\tlocalhost\n")
	applier := &recordingApplier{}

	builder := &netconf.HostnameCommandBuilder{
		ConfigurationProvider: func() netconf.CommandConfiguration {
			return netconf.CommandConfiguration{HostnamePath: hostnamePath, HostsPath: hostsPath}
		},
		Applier: applier,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	require.NoError(testInstance, command.Flags().Set("yes", "true"))

	require.NoError(testInstance, command.RunE(command, []string{"pihole-lab"}))

	require.Equal(testInstance, "pihole-lab\n", readFile(testInstance, hostnamePath))
	require.Equal(testInstance, []string{"pihole-lab"}, applier.appliedHostnames)
	require.Contains(testInstance, outputBuffer.String(), "Hostname set to pihole-lab")
}

func TestHostnameCommandRejectsInvalidName(testInstance *testing.T) {
	hostnamePath, hostsPath := newHostFiles(testInstance, "raspberrypi\n", "127.0.0.1\tlocalhost\n")

	builder := &netconf.HostnameCommandBuilder{
		ConfigurationProvider: func() netconf.CommandConfiguration {
			return netconf.CommandConfiguration{HostnamePath: hostnamePath, HostsPath: hostsPath}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetContext(context.Background())
	require.NoError(testInstance, command.Flags().Set("yes", "true"))

	runError := command.RunE(command, []string{"bad name"})

	validationError := &netconf.ValidationError{}
	require.ErrorAs(testInstance, runError, &validationError)
}
