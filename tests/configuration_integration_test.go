package tests

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	configurationFileNameConstant     = "config.yaml"
	configFlagArgumentConstant        = "--config"
	configuredStoreTemplateConstant   = "common:\n  log_level: error\n  log_format: console\ntools:\n  audit:\n    store_path: %s\n"
	invalidConfigurationYAMLConstant  = "common: [not, a, mapping]\n"
	configurationLoadFailureSample    = "unable to load configuration"
	configuredStoreFileNameConstant   = "configured-adlists.list"
	configuredStoreContentConstant    = "# managed by piu\n"
	configuredEmptyStoreReportSample  = "Store contains no adlist sources."
	unknownLogLevelYAMLConstant       = "common:\n  log_level: whispering\n"
	loggerCreationFailureSamplePrefix = "unable to create logger"
)

func TestRootCommandReadsStorePathFromConfigurationFile(t *testing.T) {
	temporaryDirectory := t.TempDir()

	storePath := filepath.Join(temporaryDirectory, configuredStoreFileNameConstant)
	require.NoError(t, os.WriteFile(storePath, []byte(configuredStoreContentConstant), 0o644))

	configurationPath := filepath.Join(temporaryDirectory, configurationFileNameConstant)
	configurationContent := fmt.Sprintf(configuredStoreTemplateConstant, storePath)
	require.NoError(t, os.WriteFile(configurationPath, []byte(configurationContent), 0o644))

	outputBuffer := &bytes.Buffer{}
	rootCommand := newRootCommand(t, outputBuffer)
	rootCommand.SetArgs([]string{configFlagArgumentConstant, configurationPath, auditCommandNameConstant})

	require.NoError(t, rootCommand.Execute())
	require.Contains(t, outputBuffer.String(), configuredEmptyStoreReportSample)
}

func TestRootCommandRejectsMalformedConfigurationFile(t *testing.T) {
	temporaryDirectory := t.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, configurationFileNameConstant)
	require.NoError(t, os.WriteFile(configurationPath, []byte(invalidConfigurationYAMLConstant), 0o644))

	outputBuffer := &bytes.Buffer{}
	rootCommand := newRootCommand(t, outputBuffer)
	rootCommand.SetArgs([]string{configFlagArgumentConstant, configurationPath, auditCommandNameConstant})

	executionError := rootCommand.Execute()
	require.Error(t, executionError)
	require.Contains(t, executionError.Error(), configurationLoadFailureSample)
}

func TestRootCommandRejectsUnknownLogLevel(t *testing.T) {
	temporaryDirectory := t.TempDir()
	configurationPath := filepath.Join(temporaryDirectory, configurationFileNameConstant)
	require.NoError(t, os.WriteFile(configurationPath, []byte(unknownLogLevelYAMLConstant), 0o644))

	outputBuffer := &bytes.Buffer{}
	rootCommand := newRootCommand(t, outputBuffer)
	rootCommand.SetArgs([]string{configFlagArgumentConstant, configurationPath, auditCommandNameConstant})

	executionError := rootCommand.Execute()
	require.Error(t, executionError)
	require.Contains(t, executionError.Error(), loggerCreationFailureSamplePrefix)
}
