package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tmakino/opskit/internal/external-adapters/procfs"
)

func runSysinfo(_ context.Context, args []string) {
	fs := flag.NewFlagSet("sysinfo", flag.ExitOnError)
	var (
		asJSON = fs.Bool("json", false, "Emit the report as JSON")
		mounts = fs.String("mounts", "", "Comma-separated mount points to report (default: all block-device mounts)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit sysinfo [options]

Show a snapshot of local system status: uptime, load average, memory,
and disk usage.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit sysinfo
  opskit sysinfo --json
  opskit sysinfo --mounts /,/var,/home
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	var mountList []string
	if *mounts != "" {
		for _, m := range strings.Split(*mounts, ",") {
			if m = strings.TrimSpace(m); m != "" {
				mountList = append(mountList, m)
			}
		}
	}

	collector := procfs.NewCollector()
	report, err := collector.Snapshot(mountList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error collecting system info: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("🖥  %s\n\n", report.Hostname)
	fmt.Printf("  Uptime:  %s\n", report.Uptime)
	fmt.Printf("  Load:    %.2f %.2f %.2f (%d CPUs)\n",
		report.Load.Load1, report.Load.Load5, report.Load.Load15, report.CPUCount)
	fmt.Printf("  Memory:  %s total, %s available\n",
		formatKb(report.Memory.TotalKb), formatKb(report.Memory.AvailableKb))
	if report.Memory.SwapTotalKb > 0 {
		fmt.Printf("  Swap:    %s total, %s free\n",
			formatKb(report.Memory.SwapTotalKb), formatKb(report.Memory.SwapFreeKb))
	}

	if len(report.Disks) > 0 {
		fmt.Println("\n  Disks:")
		for _, disk := range report.Disks {
			fmt.Printf("    %-20s %s / %s (%.1f%% used)\n",
				disk.MountPoint, formatBytes(disk.UsedBytes), formatBytes(disk.TotalBytes), disk.UsedPercent)
		}
	}
}

func formatKb(kb uint64) string {
	return formatBytes(kb * 1024)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
