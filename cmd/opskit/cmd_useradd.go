package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tmakino/opskit/internal/domain-adapters/gateways"
)

func runUseradd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("useradd", flag.ExitOnError)
	var (
		comment    = fs.String("comment", "", "GECOS comment (full name)")
		home       = fs.String("home", "", "Home directory path")
		shell      = fs.String("shell", "/bin/bash", "Login shell")
		groups     = fs.String("groups", "", "Comma-separated supplementary groups")
		system     = fs.Bool("system", false, "Create a system account")
		createHome = fs.Bool("create-home", true, "Create the home directory")
		password   = fs.String("password", "", "Initial password (set via chpasswd)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit useradd <username> [options]

Create a local user account with useradd. Must be run as root.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sudo opskit useradd alice --comment "Alice Example" --groups sudo,docker
  sudo opskit useradd svc-metrics --system --create-home=false --shell /usr/sbin/nologin
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: username is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	username := fs.Arg(0)

	var groupList []string
	if *groups != "" {
		for _, g := range strings.Split(*groups, ",") {
			if g = strings.TrimSpace(g); g != "" {
				groupList = append(groupList, g)
			}
		}
	}

	provisioner := gateways.NewUserProvisioner(gateways.NewCommandRunner())
	report, err := provisioner.Create(ctx, gateways.UserSpec{
		Name:       username,
		Comment:    *comment,
		Home:       *home,
		Shell:      *shell,
		Groups:     groupList,
		System:     *system,
		CreateHome: *createHome,
		Password:   *password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if report.Failed() {
		fmt.Fprintf(os.Stderr, "❌ useradd failed (exit %d)\n%s", report.ExitCode, report.Stderr)
		os.Exit(1)
	}

	fmt.Printf("✅ User %s created\n", username)
}
