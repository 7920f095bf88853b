package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tmakino/opskit/internal/domain-adapters/gateways"
)

func runPortscan(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("portscan", flag.ExitOnError)
	var (
		firstPort   = fs.Int("from", 1, "First port in the range")
		lastPort    = fs.Int("to", 1024, "Last port in the range")
		timeout     = fs.Duration("timeout", 2*time.Second, "Per-port connect timeout")
		concurrency = fs.Int("concurrency", 64, "Number of concurrent connection attempts")
		asJSON      = fs.Bool("json", false, "Emit the report as JSON")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit portscan <host> [options]

Scan a TCP port range on a host with concurrent connect attempts.
Refused and timed-out ports count as closed.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit portscan 192.168.1.10
  opskit portscan web1.example.com --from 1 --to 65535 --concurrency 256
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: host is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	host := fs.Arg(0)

	scanner := gateways.NewPortScanner(*timeout, *concurrency)
	report, err := scanner.Scan(ctx, host, *firstPort, *lastPort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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

	fmt.Printf("🔎 %s ports %d-%d (%d scanned in %s)\n\n",
		report.Host, report.FirstPort, report.LastPort, report.Scanned,
		report.Elapsed.Round(time.Millisecond))

	if len(report.OpenPorts) == 0 {
		fmt.Println("  No open ports found")
		return
	}
	for _, port := range report.OpenPorts {
		fmt.Printf("  %5d/tcp open\n", port)
	}
}
