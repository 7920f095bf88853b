package entities

import "time"

// ScanReport holds the outcome of a TCP connect scan against one host
type ScanReport struct {
	Host      string        `json:"host"`
	FirstPort int           `json:"first_port"`
	LastPort  int           `json:"last_port"`
	OpenPorts []int         `json:"open_ports"`
	Scanned   int           `json:"scanned"`
	Elapsed   time.Duration `json:"-"`
	ElapsedMs int64         `json:"elapsed_ms"`
}
