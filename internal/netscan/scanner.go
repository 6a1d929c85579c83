package netscan

import (
	"context"
	"net"
	"strings"

	"github.com/DeltaEpiales/PiU/internal/execshell"
)

const (
	pingScanFlagConstant         = "-sn"
	scanReportLinePrefixConstant = "Nmap scan report for "
	macAddressLinePrefixConstant = "MAC Address: "
)

// Scanner sweeps a network range with nmap and parses the discovered hosts.
type Scanner struct {
	executor CommandExecutor
}

// NewScanner constructs a Scanner over the provided executor.
func NewScanner(executor CommandExecutor) *Scanner {
	return &Scanner{executor: executor}
}

// Discover runs a ping sweep across the range and returns every responding host.
func (scanner *Scanner) Discover(executionContext context.Context, networkCIDR string) ([]DiscoveredHost, error) {
	if _, _, parseError := net.ParseCIDR(networkCIDR); parseError != nil {
		return nil, &ScanError{NetworkCIDR: networkCIDR, Cause: parseError}
	}

	sweepResult, sweepError := scanner.executor.ExecuteNmap(executionContext, execshell.CommandDetails{
		Arguments: []string{pingScanFlagConstant, networkCIDR},
	})
	if sweepError != nil {
		return nil, &ScanError{NetworkCIDR: networkCIDR, Cause: sweepError}
	}

	return parseSweepOutput(sweepResult.StandardOutput), nil
}

// parseSweepOutput extracts hosts from nmap's human-readable -sn report. Both
// report forms appear in practice: a bare address, or a name with the address
// parenthesized. MAC lines attach to the report line immediately above them.
func parseSweepOutput(sweepOutput string) []DiscoveredHost {
	var discoveredHosts []DiscoveredHost

	for _, outputLine := range strings.Split(sweepOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)

		if strings.HasPrefix(trimmedLine, scanReportLinePrefixConstant) {
			reportTarget := strings.TrimPrefix(trimmedLine, scanReportLinePrefixConstant)
			discoveredHosts = append(discoveredHosts, parseReportTarget(reportTarget))
			continue
		}

		if strings.HasPrefix(trimmedLine, macAddressLinePrefixConstant) && len(discoveredHosts) > 0 {
			hardwareAddress, hardwareVendor := parseMACLine(strings.TrimPrefix(trimmedLine, macAddressLinePrefixConstant))
			discoveredHosts[len(discoveredHosts)-1].HardwareAddress = hardwareAddress
			discoveredHosts[len(discoveredHosts)-1].HardwareVendor = hardwareVendor
		}
	}

	return discoveredHosts
}

func parseReportTarget(reportTarget string) DiscoveredHost {
	openIndex := strings.LastIndex(reportTarget, "(")
	closeIndex := strings.LastIndex(reportTarget, ")")
	if openIndex > 0 && closeIndex > openIndex {
		return DiscoveredHost{
			Address:      reportTarget[openIndex+1 : closeIndex],
			ReportedName: strings.TrimSpace(reportTarget[:openIndex]),
		}
	}
	return DiscoveredHost{Address: strings.TrimSpace(reportTarget)}
}

func parseMACLine(macLine string) (string, string) {
	hardwareFields := strings.SplitN(macLine, " ", 2)
	hardwareAddress := strings.TrimSpace(hardwareFields[0])

	hardwareVendor := ""
	if len(hardwareFields) > 1 {
		hardwareVendor = strings.Trim(strings.TrimSpace(hardwareFields[1]), "()")
	}
	return hardwareAddress, hardwareVendor
}
