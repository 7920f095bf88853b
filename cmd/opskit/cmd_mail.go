package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tmakino/opskit/internal/domain-adapters/gateways"
)

func runMail(_ context.Context, args []string) {
	fs := flag.NewFlagSet("mail", flag.ExitOnError)
	var (
		from       = fs.String("from", "", "Sender address")
		to         = fs.String("to", "", "Comma-separated recipient addresses")
		subject    = fs.String("subject", "", "Message subject")
		body       = fs.String("body", "", "Message body (default: read from stdin)")
		configPath = fs.String("config", defaultConfigPath(), "Path to the opskit config file")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit mail --to <addr> --subject <text> [options]

Send a plain-text email through the SMTP relay configured in the
[mail] section of the config file. The body is read from stdin unless
--body is given.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit mail --to ops@example.com --subject "backup done" --body "all good"
  opskit sysinfo | opskit mail --to ops@example.com --subject "nightly report"
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *to == "" {
		fmt.Fprintf(os.Stderr, "Error: --to is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Mail.Host == "" {
		fmt.Fprintf(os.Stderr, "Error: no SMTP host configured (set [mail] host in %s)\n", *configPath)
		os.Exit(1)
	}

	sender := *from
	if sender == "" {
		sender = cfg.Mail.From
	}

	text := *body
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	recipients := make([]string, 0, 2)
	for _, addr := range strings.Split(*to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}

	mailer := gateways.NewMailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)
	err = mailer.Send(gateways.MailMessage{
		From:    sender,
		To:      recipients,
		Subject: *subject,
		Body:    text,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending mail: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✉️  Sent to %s\n", strings.Join(recipients, ", "))
}
