package entities

import "time"

// SystemReport is a point-in-time snapshot of local system state
type SystemReport struct {
	Hostname    string      `json:"hostname"`
	Uptime      string      `json:"uptime"`
	UptimeSecs  float64     `json:"uptime_seconds"`
	Load        LoadAverage `json:"load"`
	CPUCount    int         `json:"cpu_count"`
	Memory      MemoryStats `json:"memory"`
	Disks       []DiskUsage `json:"disks"`
	CollectedAt time.Time   `json:"collected_at"`
}

// LoadAverage holds the 1/5/15 minute load averages
type LoadAverage struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// MemoryStats holds memory figures in kilobytes as reported by the kernel
type MemoryStats struct {
	TotalKb     uint64 `json:"total_kb"`
	FreeKb      uint64 `json:"free_kb"`
	AvailableKb uint64 `json:"available_kb"`
	SwapTotalKb uint64 `json:"swap_total_kb"`
	SwapFreeKb  uint64 `json:"swap_free_kb"`
}

// DiskUsage holds usage figures for one mounted filesystem
type DiskUsage struct {
	MountPoint  string  `json:"mount_point"`
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedPercent float64 `json:"used_percent"`
}
