package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "sysinfo":
		runSysinfo(ctx, os.Args[2:])
	case "exec":
		runExec(ctx, os.Args[2:])
	case "backup":
		runBackup(ctx, os.Args[2:])
	case "loggrep":
		runLoggrep(ctx, os.Args[2:])
	case "mail":
		runMail(ctx, os.Args[2:])
	case "useradd":
		runUseradd(ctx, os.Args[2:])
	case "portscan":
		runPortscan(ctx, os.Args[2:])
	case "playbook":
		runPlaybook(ctx, os.Args[2:])
	case "adhoc":
		runAdhoc(ctx, os.Args[2:])
	case "facts":
		runFacts(ctx, os.Args[2:])
	case "list":
		runList(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "serve":
		runServe(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`opskit - Sysadmin toolkit for monitoring, remote ops, and Ansible automation

Usage:
  opskit <command> [options]

Commands:
  sysinfo   Show local system status (uptime, load, memory, disks)
  exec      Run a command on a remote host over SSH
  backup    Create a tar.gz backup of a directory
  loggrep   Search a log file for matching lines
  mail      Send a plain-text notification email
  useradd   Create a local user account
  portscan  Scan TCP ports on a host
  playbook  Run an Ansible playbook
  adhoc     Run an Ansible ad-hoc module
  facts     Gather Ansible facts from hosts
  list      List hosts from an inventory or tasks from a playbook
  verify    Verify backup checksums and GPG signatures
  serve     Start the playbook HTTP API

Use "opskit <command> --help" for more information about a command.`)
}
