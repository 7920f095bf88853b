package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/tmakino/opskit/internal/external-adapters/ansible"
)

// Fact keys shown in the summary view
var summaryFactKeys = []string{
	"ansible_hostname",
	"ansible_distribution",
	"ansible_distribution_version",
	"ansible_kernel",
	"ansible_processor_vcpus",
	"ansible_memtotal_mb",
	"ansible_default_ipv4",
}

func runFacts(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("facts", flag.ExitOnError)
	var (
		inventory = fs.String("inventory", "", "Inventory file")
		asJSON    = fs.Bool("json", false, "Emit full facts as JSON")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit facts <host-pattern> [options]

Gather Ansible facts from hosts via the setup module. The default view
is a short per-host summary; use --json for everything.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit facts all --inventory hosts.yml
  opskit facts web1 --inventory hosts.yml --json
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: host pattern is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	runner := ansible.NewRunner()
	facts, err := runner.GatherFacts(ctx, fs.Arg(0), *inventory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		byHost := make(map[string]map[string]interface{}, len(facts))
		for host, hf := range facts {
			byHost[host] = hf.Facts
		}
		out, err := json.MarshalIndent(byHost, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding facts: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	hosts := make([]string, 0, len(facts))
	for host := range facts {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	for _, host := range hosts {
		hf := facts[host]
		if hf.Status != "SUCCESS" {
			fmt.Printf("❌ %s (%s)\n\n", host, hf.Status)
			continue
		}

		fmt.Printf("🖥  %s\n", host)
		for _, key := range summaryFactKeys {
			if value, ok := hf.Facts[key]; ok {
				fmt.Printf("  %-30s %v\n", key, value)
			}
		}
		fmt.Println()
	}
}
