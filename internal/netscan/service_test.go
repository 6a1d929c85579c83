package netscan_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeltaEpiales/PiU/internal/netscan"
)

type stubDiscoverer struct {
	hosts         []netscan.DiscoveredHost
	discoverError error
}

func (discoverer *stubDiscoverer) Discover(executionContext context.Context, networkCIDR string) ([]netscan.DiscoveredHost, error) {
	return discoverer.hosts, discoverer.discoverError
}

type stubResolver struct {
	namesByAddress map[string]string
	resolveError   error
}

func (resolver *stubResolver) Reverse(executionContext context.Context, address string) (string, error) {
	if resolver.resolveError != nil {
		return "", resolver.resolveError
	}
	return resolver.namesByAddress[address], nil
}

func TestServiceScanAnnotatesHosts(testInstance *testing.T) {
	discoverer := &stubDiscoverer{hosts: []netscan.DiscoveredHost{
		{Address: "192.168.1.1", ReportedName: "router.lan", HardwareAddress: "AA:BB:CC:DD:EE:FF"},
		{Address: "192.168.1.42"},
	}}
	resolver := &stubResolver{namesByAddress: map[string]string{
		"192.168.1.42": "printer.lan",
	}}
	var outputBuffer bytes.Buffer

	service := netscan.NewService(discoverer, resolver, &outputBuffer)
	scanResults, scanError := service.Scan(context.Background(), netscan.ScanOptions{NetworkCIDR: "192.168.1.0/24"})

	require.NoError(testInstance, scanError)
	require.Len(testInstance, scanResults, 2)
	require.Equal(testInstance, "router.lan", scanResults[0].ResolvedName)
	require.Equal(testInstance, "printer.lan", scanResults[1].ResolvedName)

	reportText := outputBuffer.String()
	require.Contains(testInstance, reportText, "Scanning 192.168.1.0/24...")
	require.Contains(testInstance, reportText, "2 host(s) up:")
	require.Contains(testInstance, reportText, "printer.lan")
	require.Contains(testInstance, reportText, "[AA:BB:CC:DD:EE:FF]")
}

func TestServiceScanResolverFailureDegradesToReportedName(testInstance *testing.T) {
	discoverer := &stubDiscoverer{hosts: []netscan.DiscoveredHost{{Address: "192.168.1.42"}}}
	resolver := &stubResolver{resolveError: errors.New("dns unreachable")}
	var outputBuffer bytes.Buffer

	service := netscan.NewService(discoverer, resolver, &outputBuffer)
	scanResults, scanError := service.Scan(context.Background(), netscan.ScanOptions{NetworkCIDR: "192.168.1.0/24"})

	require.NoError(testInstance, scanError)
	require.Empty(testInstance, scanResults[0].ResolvedName)
	require.Contains(testInstance, outputBuffer.String(), "(no name)")
}

func TestServiceScanNoHosts(testInstance *testing.T) {
	var outputBuffer bytes.Buffer

	service := netscan.NewService(&stubDiscoverer{}, &stubResolver{}, &outputBuffer)
	scanResults, scanError := service.Scan(context.Background(), netscan.ScanOptions{NetworkCIDR: "192.168.1.0/24"})

	require.NoError(testInstance, scanError)
	require.Empty(testInstance, scanResults)
	require.Contains(testInstance, outputBuffer.String(), "No hosts responded.")
}

func TestServiceScanSurfacesSweepFailure(testInstance *testing.T) {
	sweepFailure := errors.New("sweep failed")
	discoverer := &stubDiscoverer{discoverError: sweepFailure}

	service := netscan.NewService(discoverer, &stubResolver{}, &bytes.Buffer{})
	_, scanError := service.Scan(context.Background(), netscan.ScanOptions{NetworkCIDR: "192.168.1.0/24"})

	require.ErrorIs(testInstance, scanError, sweepFailure)
}
