package status

import (
	"context"
	"fmt"
	"io"

	"github.com/DeltaEpiales/PiU/internal/piholecli"
	"github.com/DeltaEpiales/PiU/internal/sysinfo"
)

const (
	blockingLineTemplateConstant    = "Blocking:     %s\n"
	versionLineTemplateConstant     = "Version:      %s\n"
	uptimeLineTemplateConstant      = "Uptime:       %s\n"
	loadLineTemplateConstant        = "Load:         %s\n"
	memoryLineTemplateConstant      = "Memory:       %s\n"
	diskLineTemplateConstant        = "Root disk:    %s\n"
	temperatureLineTemplateConstant = "CPU temp:     %s\n"
	unavailableFieldConstant        = "n/a"
)

// BlockingReporter reports the appliance's blocking state and version.
type BlockingReporter interface {
	Status(executionContext context.Context) (piholecli.StatusReport, error)
	Version(executionContext context.Context) (string, error)
}

// HealthCollector samples host health for the overview.
type HealthCollector interface {
	Collect() sysinfo.Snapshot
}

// Service renders the combined status screen.
type Service struct {
	reporter     BlockingReporter
	collector    HealthCollector
	outputWriter io.Writer
}

// NewService constructs a Service over the provided collaborators.
func NewService(reporter BlockingReporter, collector HealthCollector, outputWriter io.Writer) *Service {
	return &Service{reporter: reporter, collector: collector, outputWriter: outputWriter}
}

// Render writes the status screen. Appliance queries failing degrade their
// lines to "n/a"; host metrics degrade per metric inside the collector.
func (service *Service) Render(executionContext context.Context) error {
	blockingState := unavailableFieldConstant
	if statusReport, statusError := service.reporter.Status(executionContext); statusError == nil {
		blockingState = string(statusReport.Blocking)
	}
	fmt.Fprintf(service.outputWriter, blockingLineTemplateConstant, blockingState)

	applianceVersion := unavailableFieldConstant
	if reportedVersion, versionError := service.reporter.Version(executionContext); versionError == nil && len(reportedVersion) > 0 {
		applianceVersion = reportedVersion
	}
	fmt.Fprintf(service.outputWriter, versionLineTemplateConstant, applianceVersion)

	healthSnapshot := service.collector.Collect()
	fmt.Fprintf(service.outputWriter, uptimeLineTemplateConstant, healthSnapshot.Uptime)
	fmt.Fprintf(service.outputWriter, loadLineTemplateConstant, healthSnapshot.LoadAverage)
	fmt.Fprintf(service.outputWriter, memoryLineTemplateConstant, healthSnapshot.MemoryUsage)
	fmt.Fprintf(service.outputWriter, diskLineTemplateConstant, healthSnapshot.RootDiskUsage)
	fmt.Fprintf(service.outputWriter, temperatureLineTemplateConstant, healthSnapshot.CPUTemperature)
	return nil
}
