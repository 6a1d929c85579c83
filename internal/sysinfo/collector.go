package sysinfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	unavailableMetricConstant   = "n/a"
	rootMountPointConstant      = "/"
	cpuSensorKeywordConstant    = "cpu"
	coreSensorKeywordConstant   = "core"
	uptimeTemplateConstant      = "%dd %dh %dm"
	loadAverageTemplateConstant = "%.2f %.2f %.2f"
	usageTemplateConstant       = "%s / %s (%.1f%%)"
	temperatureTemplateConstant = "%.1f°C"
	mebibyteConstant            = 1 << 20
	gibibyteConstant            = 1 << 30
)

// Snapshot holds one sampling of host health, each metric already rendered.
// Metrics that could not be read carry "n/a".
type Snapshot struct {
	Uptime         string
	LoadAverage    string
	MemoryUsage    string
	RootDiskUsage  string
	CPUTemperature string
}

// Collector samples host metrics. Each probe failing independently degrades
// that metric to "n/a" without affecting the others.
type Collector struct {
	uptimeSeconds func() (uint64, error)
	loadAverage   func() (*load.AvgStat, error)
	virtualMemory func() (*mem.VirtualMemoryStat, error)
	diskUsage     func(path string) (*disk.UsageStat, error)
	temperatures  func() ([]host.TemperatureStat, error)
}

// NewCollector constructs a Collector backed by the host's real probes.
func NewCollector() *Collector {
	return &Collector{
		uptimeSeconds: host.Uptime,
		loadAverage:   load.Avg,
		virtualMemory: mem.VirtualMemory,
		diskUsage:     disk.Usage,
		temperatures:  host.SensorsTemperatures,
	}
}

// Collect samples every metric and renders the snapshot.
func (collector *Collector) Collect() Snapshot {
	return Snapshot{
		Uptime:         collector.collectUptime(),
		LoadAverage:    collector.collectLoadAverage(),
		MemoryUsage:    collector.collectMemoryUsage(),
		RootDiskUsage:  collector.collectRootDiskUsage(),
		CPUTemperature: collector.collectCPUTemperature(),
	}
}

func (collector *Collector) collectUptime() string {
	uptimeSeconds, uptimeError := collector.uptimeSeconds()
	if uptimeError != nil {
		return unavailableMetricConstant
	}

	uptimeDuration := time.Duration(uptimeSeconds) * time.Second
	uptimeDays := int(uptimeDuration.Hours()) / 24
	uptimeHours := int(uptimeDuration.Hours()) % 24
	uptimeMinutes := int(uptimeDuration.Minutes()) % 60
	return fmt.Sprintf(uptimeTemplateConstant, uptimeDays, uptimeHours, uptimeMinutes)
}

func (collector *Collector) collectLoadAverage() string {
	loadAverages, loadError := collector.loadAverage()
	if loadError != nil || loadAverages == nil {
		return unavailableMetricConstant
	}
	return fmt.Sprintf(loadAverageTemplateConstant, loadAverages.Load1, loadAverages.Load5, loadAverages.Load15)
}

func (collector *Collector) collectMemoryUsage() string {
	memoryStatistics, memoryError := collector.virtualMemory()
	if memoryError != nil || memoryStatistics == nil {
		return unavailableMetricConstant
	}
	return fmt.Sprintf(usageTemplateConstant,
		formatByteCount(memoryStatistics.Used),
		formatByteCount(memoryStatistics.Total),
		memoryStatistics.UsedPercent,
	)
}

func (collector *Collector) collectRootDiskUsage() string {
	diskStatistics, diskError := collector.diskUsage(rootMountPointConstant)
	if diskError != nil || diskStatistics == nil {
		return unavailableMetricConstant
	}
	return fmt.Sprintf(usageTemplateConstant,
		formatByteCount(diskStatistics.Used),
		formatByteCount(diskStatistics.Total),
		diskStatistics.UsedPercent,
	)
}

// collectCPUTemperature prefers a sensor whose key names the CPU or a core;
// many boards expose exactly one usable sensor under a vendor-specific key.
func (collector *Collector) collectCPUTemperature() string {
	temperatureReadings, temperatureError := collector.temperatures()
	if temperatureError != nil || len(temperatureReadings) == 0 {
		return unavailableMetricConstant
	}

	for _, temperatureReading := range temperatureReadings {
		sensorKey := strings.ToLower(temperatureReading.SensorKey)
		if strings.Contains(sensorKey, cpuSensorKeywordConstant) || strings.Contains(sensorKey, coreSensorKeywordConstant) {
			return fmt.Sprintf(temperatureTemplateConstant, temperatureReading.Temperature)
		}
	}
	return fmt.Sprintf(temperatureTemplateConstant, temperatureReadings[0].Temperature)
}

func formatByteCount(byteCount uint64) string {
	if byteCount >= gibibyteConstant {
		return fmt.Sprintf("%.1f GiB", float64(byteCount)/float64(gibibyteConstant))
	}
	return fmt.Sprintf("%.0f MiB", float64(byteCount)/float64(mebibyteConstant))
}
