package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmakino/opskit/internal/external-adapters/ssh"
	"github.com/tmakino/opskit/internal/external-adapters/yaml"
)

func runExec(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	var (
		host      = fs.String("host", "", "Target host (name or address)")
		port      = fs.Int("port", 22, "SSH port")
		user      = fs.String("user", os.Getenv("USER"), "SSH user")
		password  = fs.String("password", "", "SSH password (prefer --key)")
		keyPath   = fs.String("key", "", "Path to a private key file")
		inventory = fs.String("inventory", "", "Resolve --host against this inventory file")
		timeout   = fs.Duration("timeout", 10*time.Second, "Connection timeout")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit exec --host <host> [options] -- <command>

Run a command on a remote host over SSH and print its output. The
remote exit code becomes the exit code of opskit.

With --inventory the host name is looked up in an Ansible-style YAML
inventory and its connection vars (address, port, user) are applied.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit exec --host web1.example.com --user deploy --key ~/.ssh/id_ed25519 -- uptime
  opskit exec --host web1 --inventory hosts.yml -- "df -h /"
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *host == "" {
		fmt.Fprintf(os.Stderr, "Error: --host is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: command is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	command := strings.Join(fs.Args(), " ")

	cfg := ssh.Config{
		Host:     *host,
		Port:     *port,
		User:     *user,
		Password: *password,
		KeyPath:  *keyPath,
		Timeout:  *timeout,
	}

	// Inventory vars fill in anything not set on the command line
	if *inventory != "" {
		repo := yaml.NewInventoryRepository()
		invHost, err := repo.FindHost(ctx, *inventory, *host)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving host: %v\n", err)
			os.Exit(1)
		}
		if invHost.Address != "" {
			cfg.Host = invHost.Address
		}
		if invHost.Port != 0 && *port == 22 {
			cfg.Port = invHost.Port
		}
		if invHost.User != "" && *user == os.Getenv("USER") {
			cfg.User = invHost.User
		}
	}

	client := ssh.NewClient(cfg)
	report, err := client.Run(ctx, command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.Stdout)
	if report.Stderr != "" {
		fmt.Fprint(os.Stderr, report.Stderr)
	}

	if !report.Success {
		os.Exit(report.ExitCode)
	}
}
