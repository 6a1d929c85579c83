package audit_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DeltaEpiales/PiU/internal/audit"
)

func TestCommandBuilderBuildMetadata(testInstance *testing.T) {
	builder := &audit.CommandBuilder{}

	command, buildError := builder.Build()

	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "audit", command.Use)
	require.NotNil(testInstance, command.Flags().Lookup("store"))
	require.NotNil(testInstance, command.Flags().Lookup("yes"))
	require.NotNil(testInstance, command.Flags().Lookup("timeout"))
}

func TestCommandRunUsesStoreFlag(testInstance *testing.T) {
	storePath := filepath.Join(testInstance.TempDir(), "adlists.list")
	require.NoError(testInstance, os.WriteFile(storePath, []byte("http://a.com/list\nhttp://a.com/list\n"), 0o644))

	builder := &audit.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		Prober:         &stubProber{},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	require.NoError(testInstance, command.Flags().Set("store", storePath))
	require.NoError(testInstance, command.Flags().Set("yes", "true"))

	require.NoError(testInstance, command.RunE(command, nil))

	rewrittenContents, readError := os.ReadFile(storePath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "http://a.com/list\n", string(rewrittenContents))
	require.Contains(testInstance, outputBuffer.String(), "All adlists reachable.")
}

func TestCommandRunConfigurationFallback(testInstance *testing.T) {
	storePath := filepath.Join(testInstance.TempDir(), "adlists.list")
	require.NoError(testInstance, os.WriteFile(storePath, []byte("http://a.com/list\n"), 0o644))

	prober := &stubProber{}
	builder := &audit.CommandBuilder{
		ConfigurationProvider: func() audit.CommandConfiguration {
			return audit.CommandConfiguration{StorePath: storePath, ProbeTimeoutSeconds: 5}
		},
		Prober: prober,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())

	require.NoError(testInstance, command.RunE(command, nil))
	require.Equal(testInstance, []string{"http://a.com/list"}, prober.checkedSources)
}

func TestCommandRunMissingStoreReturnsError(testInstance *testing.T) {
	builder := &audit.CommandBuilder{
		ConfigurationProvider: func() audit.CommandConfiguration {
			return audit.CommandConfiguration{StorePath: filepath.Join(testInstance.TempDir(), "absent.list")}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetContext(context.Background())

	require.Error(testInstance, command.RunE(command, nil))
}

func TestDefaultCommandConfigurationSanitize(testInstance *testing.T) {
	sanitized := audit.DefaultCommandConfiguration()

	require.Equal(testInstance, "/etc/pihole/adlists.list", sanitized.StorePath)
	require.Equal(testInstance, 10, sanitized.ProbeTimeoutSeconds)
	require.False(testInstance, sanitized.AssumeYes)
	require.Equal(testInstance, 10*time.Second, audit.DefaultProbeTimeout)
}
