package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tmakino/opskit/internal/external-adapters/ansible"
	"github.com/tmakino/opskit/internal/external-adapters/logging"
	"github.com/tmakino/opskit/internal/server"
)

func runServe(_ context.Context, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		addr       = fs.String("addr", "", "Listen address (overrides config)")
		configPath = fs.String("config", defaultConfigPath(), "Path to the opskit config file")
		verbose    = fs.Bool("verbose", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit serve [options]

Start the HTTP API for remote playbook runs. POST /run-playbook takes
{"playbook": "...", "inventory": "..."} and responds with the run's
stdout, stderr, and returncode. Also serves /health and /metrics.

Set [serve] auth_token in the config file to require a bearer token.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit serve
  opskit serve --addr :9000 --config /etc/opskit.toml
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Serve.Addr = *addr
	}

	logger, err := logging.NewZapLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Flush on exit
	defer logger.Sync()

	if !ansible.IsInstalled() {
		logger.Warn("ansible-playbook not found in PATH, playbook runs will fail")
	}

	srv := server.NewServer(server.Config{
		Addr:       cfg.Serve.Addr,
		AuthToken:  cfg.Serve.AuthToken,
		RunTimeout: cfg.Serve.RunTimeout,
	}, ansible.NewRunner(), logger)

	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
