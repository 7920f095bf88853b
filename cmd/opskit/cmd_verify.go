package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmakino/opskit/internal/domain-adapters/gateways"
	"github.com/tmakino/opskit/internal/external-adapters/gpg"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		checksumFile = fs.String("checksum", "", "Checksum sidecar to verify against (.sha256)")
		gpgSig       = fs.String("gpg-sig", "", "GPG signature file (.asc)")
		gpgKeyFile   = fs.String("gpg-key", "", "GPG public key file to import")
		gpgKeysURL   = fs.String("gpg-keys-url", "", "URL to a KEYS file for GPG verification")
		verifyAll    = fs.Bool("all", false, "Auto-detect sidecar and signature files")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: opskit verify <file> [options]

Verify the integrity of a backup archive or any other file using a
SHA256 sidecar and/or a detached GPG signature.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Verify a backup archive against its sidecar
  opskit verify etc-20260825-020000.tar.gz --checksum etc-20260825-020000.tar.gz.sha256

  # Verify a GPG-signed download
  opskit verify release.tar.gz --gpg-sig release.tar.gz.asc --gpg-key maintainer.asc

  # Auto-detect .sha256 and .asc next to the file
  opskit verify backup.tar.gz --all
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: file path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	filePath := fs.Arg(0)

	if *verifyAll {
		if *checksumFile == "" && fileExists(filePath+".sha256") {
			*checksumFile = filePath + ".sha256"
		}
		if *gpgSig == "" && fileExists(filePath+".asc") {
			*gpgSig = filePath + ".asc"
		}
	}

	verified := 0
	failed := 0

	fmt.Printf("🔍 Verifying %s\n\n", filepath.Base(filePath))

	if *checksumFile != "" {
		fmt.Printf("📋 Verifying checksum...\n")
		writer := gateways.NewChecksumWriter()
		if err := writer.VerifySidecar(ctx, filePath, *checksumFile); err != nil {
			fmt.Printf("❌ Checksum verification FAILED: %v\n\n", err)
			failed++
		} else {
			fmt.Printf("✅ Checksum verified\n\n")
			verified++
		}
	}

	if *gpgSig != "" {
		fmt.Printf("🔐 Verifying GPG signature...\n")
		if err := verifyGPGSignature(ctx, filePath, *gpgSig, *gpgKeyFile, *gpgKeysURL); err != nil {
			fmt.Printf("❌ GPG signature verification FAILED: %v\n\n", err)
			failed++
		} else {
			fmt.Printf("✅ GPG signature verified\n\n")
			verified++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "❌ %d verification checks failed\n", failed)
		os.Exit(1)
	}
	if verified == 0 {
		fmt.Fprintf(os.Stderr, "Error: no verification checks performed (specify --checksum or --gpg-sig)\n")
		os.Exit(1)
	}

	fmt.Printf("✅ Verified: %d checks\n", verified)
}

func verifyGPGSignature(ctx context.Context, filePath, sigPath, keyFile, keysURL string) error {
	verifier := gpg.NewVerifier()

	if keyFile != "" {
		if err := verifier.ImportKeyFromFile(keyFile); err != nil {
			return fmt.Errorf("failed to import GPG key: %w", err)
		}
	} else if keysURL != "" {
		if err := verifier.ImportKeysFromURL(ctx, keysURL); err != nil {
			return fmt.Errorf("failed to import GPG keys from URL: %w", err)
		}
	}

	if verifier.KeyringSize() == 0 {
		return fmt.Errorf("no GPG keys imported for verification (use --gpg-key or --gpg-keys-url)")
	}

	return verifier.VerifySignatureFromFile(filePath, sigPath)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
