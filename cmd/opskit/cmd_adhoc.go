package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tmakino/opskit/internal/external-adapters/ansible"
)

func runAdhoc(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("adhoc", flag.ExitOnError)
	var (
		module    = fs.String("module", "command", "Ansible module to run")
		moduleArg = fs.String("args", "", "Module arguments")
		inventory = fs.String("inventory", "", "Inventory file")
		become    = fs.Bool("become", false, "Escalate privileges on the targets")
		timeout   = fs.Duration("timeout", 10*time.Minute, "Run timeout")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit adhoc <host-pattern> [options]

Run a single Ansible module against a host pattern, like the ansible
command-line tool.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit adhoc all --inventory hosts.yml --module ping
  opskit adhoc web --inventory hosts.yml --module shell --args "systemctl restart nginx" --become
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
	runner.SetTimeout(*timeout)

	report, err := runner.RunAdHoc(ctx, ansible.AdHocRequest{
		Pattern:   fs.Arg(0),
		Module:    *module,
		Args:      *moduleArg,
		Inventory: *inventory,
		Become:    *become,
	})
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
