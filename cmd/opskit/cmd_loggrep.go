package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/tmakino/opskit/internal/domain-adapters/gateways"
)

func runLoggrep(_ context.Context, args []string) {
	fs := flag.NewFlagSet("loggrep", flag.ExitOnError)
	var (
		ignoreCase = fs.Bool("i", false, "Case-insensitive matching")
		invert     = fs.Bool("v", false, "Report lines NOT matching the pattern")
		maxMatches = fs.Int("max", 0, "Stop after this many matches (0 = unlimited)")
		count      = fs.Bool("count", false, "Print only the number of matching lines")
		asJSON     = fs.Bool("json", false, "Emit matches as JSON")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit loggrep <pattern> <file> [options]

Search a log file for lines matching a regular expression. Prints each
match with its line number. Exits 1 when nothing matches.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit loggrep ERROR /var/log/syslog
  opskit loggrep -i "failed password" /var/log/auth.log --max 20
  opskit loggrep ERROR /var/log/app.log --json
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: pattern and file are required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	pattern := fs.Arg(0)
	path := fs.Arg(1)

	scanner := gateways.NewLogScanner()
	matches, err := scanner.ScanFile(path, gateways.LogScanConfig{
		Pattern:    pattern,
		IgnoreCase: *ignoreCase,
		Invert:     *invert,
		MaxMatches: *maxMatches,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *count:
		fmt.Println(len(matches))
	case *asJSON:
		out, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding matches: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	default:
		for _, m := range matches {
			fmt.Printf("%d:%s\n", m.Line, m.Text)
		}
	}

	if len(matches) == 0 {
		os.Exit(1)
	}
}
