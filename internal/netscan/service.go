package netscan

import (
	"context"
	"fmt"
	"io"
)

const (
	scanHeaderTemplateConstant     = "Scanning %s...\n"
	noHostsFoundMessageConstant    = "No hosts responded.\n"
	hostsFoundTemplateConstant     = "%d host(s) up:\n"
	hostEntryTemplateConstant      = "  %-15s  %s\n"
	hardwareSuffixTemplateConstant = "%s  [%s]"
	unknownNamePlaceholderConstant = "(no name)"
)

// HostDiscoverer sweeps a network range and reports responding hosts.
type HostDiscoverer interface {
	Discover(executionContext context.Context, networkCIDR string) ([]DiscoveredHost, error)
}

// Service runs a sweep, resolves names for the results, and renders a report.
type Service struct {
	discoverer   HostDiscoverer
	resolver     ReverseResolver
	outputWriter io.Writer
}

// NewService constructs a Service over the provided collaborators.
func NewService(discoverer HostDiscoverer, resolver ReverseResolver, outputWriter io.Writer) *Service {
	return &Service{discoverer: discoverer, resolver: resolver, outputWriter: outputWriter}
}

// Scan sweeps the range and annotates each host with its PTR name. Resolution
// failures degrade to the sweep-reported name rather than failing the scan.
func (service *Service) Scan(executionContext context.Context, options ScanOptions) ([]ScanResult, error) {
	fmt.Fprintf(service.outputWriter, scanHeaderTemplateConstant, options.NetworkCIDR)

	discoveredHosts, discoverError := service.discoverer.Discover(executionContext, options.NetworkCIDR)
	if discoverError != nil {
		return nil, discoverError
	}

	if len(discoveredHosts) == 0 {
		fmt.Fprint(service.outputWriter, noHostsFoundMessageConstant)
		return nil, nil
	}

	scanResults := make([]ScanResult, 0, len(discoveredHosts))
	for _, discoveredHost := range discoveredHosts {
		if contextError := executionContext.Err(); contextError != nil {
			return nil, contextError
		}

		scanResult := ScanResult{Host: discoveredHost, ResolvedName: discoveredHost.ReportedName}
		if service.resolver != nil {
			if resolvedName, resolveError := service.resolver.Reverse(executionContext, discoveredHost.Address); resolveError == nil && len(resolvedName) > 0 {
				scanResult.ResolvedName = resolvedName
			}
		}
		scanResults = append(scanResults, scanResult)
	}

	service.renderResults(scanResults)
	return scanResults, nil
}

func (service *Service) renderResults(scanResults []ScanResult) {
	fmt.Fprintf(service.outputWriter, hostsFoundTemplateConstant, len(scanResults))

	for _, scanResult := range scanResults {
		displayName := scanResult.ResolvedName
		if len(displayName) == 0 {
			displayName = unknownNamePlaceholderConstant
		}
		if len(scanResult.Host.HardwareAddress) > 0 {
			displayName = fmt.Sprintf(hardwareSuffixTemplateConstant, displayName, scanResult.Host.HardwareAddress)
		}
		fmt.Fprintf(service.outputWriter, hostEntryTemplateConstant, scanResult.Host.Address, displayName)
	}
}
