package netscan

import (
	"context"
	"fmt"

	"github.com/DeltaEpiales/PiU/internal/execshell"
)

// DiscoveredHost is one responding host reported by the sweep.
type DiscoveredHost struct {
	Address         string
	ReportedName    string
	HardwareAddress string
	HardwareVendor  string
}

// ScanResult pairs a discovered host with its PTR name, when one resolves.
type ScanResult struct {
	Host         DiscoveredHost
	ResolvedName string
}

// ScanOptions selects the sweep range and resolver target for one scan.
type ScanOptions struct {
	NetworkCIDR      string
	DNSServerAddress string
}

// CommandExecutor executes the external tools the scanner relies on.
type CommandExecutor interface {
	ExecuteNmap(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ReverseResolver answers PTR lookups for discovered addresses.
type ReverseResolver interface {
	Reverse(executionContext context.Context, address string) (string, error)
}

// ScanError reports a failed network sweep.
type ScanError struct {
	NetworkCIDR string
	Cause       error
}

// Error describes the failed sweep including the requested range.
func (scanError *ScanError) Error() string {
	return fmt.Sprintf("network scan of %s failed: %v", scanError.NetworkCIDR, scanError.Cause)
}

// Unwrap exposes the underlying failure.
func (scanError *ScanError) Unwrap() error {
	return scanError.Cause
}
