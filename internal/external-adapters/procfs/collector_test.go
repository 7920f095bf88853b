package procfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeProcRoot lays out a fake proc filesystem for the collector
func writeProcRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"uptime":  "93784.52 180000.00\n",
		"loadavg": "0.52 0.41 0.30 2/512 12345\n",
		"meminfo": "MemTotal:       16384000 kB\n" +
			"MemFree:         2048000 kB\n" +
			"MemAvailable:    8192000 kB\n" +
			"Buffers:          512000 kB\n" +
			"Cached:          4096000 kB\n" +
			"SwapTotal:       1024000 kB\n" +
			"SwapFree:        1024000 kB\n",
		"mounts": "/dev/sda1 / ext4 rw,relatime 0 0\n" +
			"proc /proc proc rw 0 0\n" +
			"tmpfs /run tmpfs rw 0 0\n" +
			"/dev/sdb1 /data ext4 rw 0 0\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return root
}

func TestCollector_Snapshot(t *testing.T) {
	root := writeProcRoot(t)
	c := NewCollectorWithRoot(root)

	report, err := c.Snapshot([]string{t.TempDir()})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if report.Hostname == "" {
		t.Error("Snapshot() hostname is empty")
	}
	if report.CPUCount < 1 {
		t.Errorf("Snapshot() cpu count = %d, want >= 1", report.CPUCount)
	}
	if report.UptimeSecs != 93784.52 {
		t.Errorf("Snapshot() uptime seconds = %v, want 93784.52", report.UptimeSecs)
	}
	// 93784s is 1 day 2h 3m
	if report.Uptime != "1d 2h 3m" {
		t.Errorf("Snapshot() uptime = %q, want '1d 2h 3m'", report.Uptime)
	}
	if report.Load.Load1 != 0.52 || report.Load.Load5 != 0.41 || report.Load.Load15 != 0.30 {
		t.Errorf("Snapshot() load = %+v, want 0.52/0.41/0.30", report.Load)
	}
	if report.Memory.TotalKb != 16384000 {
		t.Errorf("Snapshot() memory total = %d kB, want 16384000", report.Memory.TotalKb)
	}
	if report.Memory.AvailableKb != 8192000 {
		t.Errorf("Snapshot() memory available = %d kB, want 8192000", report.Memory.AvailableKb)
	}
	if report.CollectedAt.IsZero() {
		t.Error("Snapshot() collected-at timestamp is zero")
	}

	if len(report.Disks) != 1 {
		t.Fatalf("Snapshot() disks = %d, want 1", len(report.Disks))
	}
	disk := report.Disks[0]
	if disk.TotalBytes == 0 {
		t.Error("Snapshot() disk total is zero")
	}
	if disk.UsedPercent < 0 || disk.UsedPercent > 100 {
		t.Errorf("Snapshot() disk used percent = %v, out of range", disk.UsedPercent)
	}
}

func TestCollector_Snapshot_MissingProcFiles(t *testing.T) {
	c := NewCollectorWithRoot(t.TempDir())

	if _, err := c.Snapshot(nil); err == nil {
		t.Error("Snapshot() should fail without proc files")
	}
}

func TestCollector_Snapshot_SkipsUnreadableMounts(t *testing.T) {
	root := writeProcRoot(t)
	c := NewCollectorWithRoot(root)

	report, err := c.Snapshot([]string{"/does/not/exist", t.TempDir()})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(report.Disks) != 1 {
		t.Errorf("Snapshot() disks = %d, want 1 (unreadable mount skipped)", len(report.Disks))
	}
}

func TestCollector_DiscoverMounts(t *testing.T) {
	root := writeProcRoot(t)
	c := NewCollectorWithRoot(root)

	points := c.discoverMounts()

	want := []string{"/", "/data"}
	if len(points) != len(want) {
		t.Fatalf("discoverMounts() = %v, want %v", points, want)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("discoverMounts()[%d] = %s, want %s", i, points[i], want[i])
		}
	}
}

func TestCollector_DiscoverMounts_NoMountsFile(t *testing.T) {
	c := NewCollectorWithRoot(t.TempDir())

	points := c.discoverMounts()

	if len(points) != 1 || points[0] != "/" {
		t.Errorf("discoverMounts() = %v, want fallback to /", points)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "0m"},
		{12 * time.Minute, "12m"},
		{3*time.Hour + 5*time.Minute, "3h 5m"},
		{26*time.Hour + 3*time.Minute, "1d 2h 3m"},
	}

	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
