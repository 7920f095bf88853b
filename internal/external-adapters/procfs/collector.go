// Package procfs collects local system statistics from /proc.
package procfs

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/c9s/goprocinfo/linux"
	"github.com/tmakino/opskit/internal/domain/entities"
)

// Collector reads system statistics from the proc filesystem
type Collector struct {
	procRoot string
}

// NewCollector creates a collector reading from /proc
func NewCollector() *Collector {
	return &Collector{procRoot: "/proc"}
}

// NewCollectorWithRoot creates a collector reading from an alternate
// proc root, used in tests
func NewCollectorWithRoot(root string) *Collector {
	return &Collector{procRoot: root}
}

// Snapshot collects a full system report. When mounts is empty the real
// mounted block devices are discovered from the mounts table.
func (c *Collector) Snapshot(mounts []string) (*entities.SystemReport, error) {
	report := &entities.SystemReport{
		CPUCount:    runtime.NumCPU(),
		CollectedAt: time.Now(),
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to read hostname: %w", err)
	}
	report.Hostname = hostname

	uptime, err := linux.ReadUptime(c.procRoot + "/uptime")
	if err != nil {
		return nil, fmt.Errorf("failed to read uptime: %w", err)
	}
	report.UptimeSecs = uptime.Total
	report.Uptime = formatUptime(uptime.GetTotalDuration())

	loadavg, err := linux.ReadLoadAvg(c.procRoot + "/loadavg")
	if err != nil {
		return nil, fmt.Errorf("failed to read loadavg: %w", err)
	}
	report.Load = entities.LoadAverage{
		Load1:  loadavg.Last1Min,
		Load5:  loadavg.Last5Min,
		Load15: loadavg.Last15Min,
	}

	meminfo, err := linux.ReadMemInfo(c.procRoot + "/meminfo")
	if err != nil {
		return nil, fmt.Errorf("failed to read meminfo: %w", err)
	}
	report.Memory = entities.MemoryStats{
		TotalKb:     meminfo.MemTotal,
		FreeKb:      meminfo.MemFree,
		AvailableKb: meminfo.MemAvailable,
		SwapTotalKb: meminfo.SwapTotal,
		SwapFreeKb:  meminfo.SwapFree,
	}

	if len(mounts) == 0 {
		mounts = c.discoverMounts()
	}
	report.Disks = make([]entities.DiskUsage, 0, len(mounts))
	for _, mount := range mounts {
		disk, err := linux.ReadDisk(mount)
		if err != nil {
			// Skip mounts that vanished or deny statfs
			continue
		}
		usage := entities.DiskUsage{
			MountPoint: mount,
			TotalBytes: disk.All,
			UsedBytes:  disk.Used,
			FreeBytes:  disk.Free,
		}
		if disk.All > 0 {
			usage.UsedPercent = float64(disk.Used) / float64(disk.All) * 100
		}
		report.Disks = append(report.Disks, usage)
	}

	return report, nil
}

// discoverMounts lists mount points backed by block devices
func (c *Collector) discoverMounts() []string {
	mounts, err := linux.ReadMounts(c.procRoot + "/mounts")
	if err != nil {
		return []string{"/"}
	}

	points := make([]string, 0, 4)
	for _, m := range mounts.Mounts {
		if strings.HasPrefix(m.Device, "/dev/") {
			points = append(points, m.MountPoint)
		}
	}
	if len(points) == 0 {
		return []string{"/"}
	}
	return points
}

// formatUptime renders a duration the way uptime(1) does, without seconds
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
