package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tmakino/opskit/internal/domain-adapters/gateways"
	orchestrators "github.com/tmakino/opskit/internal/domain-orchestrators"
	"github.com/tmakino/opskit/internal/external-adapters/logging"
)

func runBackup(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	var (
		outputDir = fs.String("output", ".", "Directory to write the archive into")
		prefix    = fs.String("prefix", "", "Archive name prefix (default: source directory name)")
		checksum  = fs.Bool("checksum", true, "Write a SHA256 sidecar next to the archive")
		verbose   = fs.Bool("verbose", false, "Enable debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit backup <source-dir> [options]

Create a timestamped tar.gz archive of a directory, optionally with a
SHA256 checksum sidecar for later verification.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  opskit backup /etc --output /var/backups
  opskit backup /var/www --prefix www --checksum=false
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: source directory is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	sourceDir := fs.Arg(0)

	logger, err := logging.NewZapLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Flush on exit
	defer logger.Sync()

	orchestrator := orchestrators.NewBackupOrchestrator(
		gateways.NewBackupArchiver(),
		gateways.NewChecksumWriter(),
		logger,
	)

	result, err := orchestrator.RunBackup(ctx, orchestrators.BackupRequest{
		SourceDir: sourceDir,
		OutputDir: *outputDir,
		Prefix:    *prefix,
		Checksum:  *checksum,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	artifact := result.Artifact
	fmt.Printf("✅ Backup complete (%s)\n", result.Duration.Round(10*time.Millisecond))
	fmt.Printf("   Archive:  %s (%d files, %s)\n",
		artifact.ArchivePath, artifact.Files, formatBytes(uint64(artifact.SizeBytes)))
	if artifact.ChecksumPath != "" {
		fmt.Printf("   Checksum: %s\n", artifact.ChecksumPath)
	}
}
