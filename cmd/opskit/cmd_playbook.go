package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmakino/opskit/internal/external-adapters/ansible"
)

func runPlaybook(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("playbook", flag.ExitOnError)
	var (
		inventory = fs.String("inventory", "", "Inventory file")
		limit     = fs.String("limit", "", "Limit execution to matching hosts")
		tags      = fs.String("tags", "", "Comma-separated task tags to run")
		extraVars = fs.String("extra-vars", "", "Comma-separated key=value pairs")
		check     = fs.Bool("check", false, "Dry run (ansible --check)")
		verbosity = fs.Int("verbosity", 0, "Ansible verbosity level (1-4)")
		timeout   = fs.Duration("timeout", 30*time.Minute, "Run timeout")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit playbook <playbook.yml> [options]

Run an Ansible playbook as a subprocess and stream its output. The
ansible-playbook exit code becomes the exit code of opskit.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit playbook site.yml --inventory hosts.yml
  opskit playbook deploy.yml --inventory hosts.yml --limit web --tags app
  opskit playbook site.yml --inventory hosts.yml --extra-vars env=prod,version=1.2.3 --check
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: playbook file is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	req := ansible.PlaybookRequest{
		Playbook:  fs.Arg(0),
		Inventory: *inventory,
		Limit:     *limit,
		Check:     *check,
		Verbosity: *verbosity,
	}
	if *tags != "" {
		req.Tags = splitList(*tags)
	}
	if *extraVars != "" {
		vars, err := parseKeyValues(*extraVars)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		req.ExtraVars = vars
	}

	runner := ansible.NewRunner()
	runner.SetTimeout(*timeout)

	report, err := runner.RunPlaybook(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.Stdout)
	if report.Stderr != "" {
		fmt.Fprint(os.Stderr, report.Stderr)
	}

	if report.Failed() {
		os.Exit(report.ExitCode)
	}
}

func splitList(raw string) []string {
	parts := make([]string, 0, 4)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func parseKeyValues(raw string) (map[string]string, error) {
	vars := make(map[string]string)
	for _, pair := range splitList(raw) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid key=value pair: %q", pair)
		}
		vars[key] = value
	}
	return vars, nil
}
