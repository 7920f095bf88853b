package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// checksumWriter calculates, writes, and verifies SHA256 checksums
type checksumWriter struct{}

// NewChecksumWriter creates a new checksum writer
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumWriter() *checksumWriter {
	return &checksumWriter{}
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (w *checksumWriter) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum verifies a file's SHA256 checksum
// Pure Go implementation - no external sha256sum binary needed
func (w *checksumWriter) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	actualSum, err := w.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if actualSum != strings.ToLower(strings.TrimSpace(expectedSum)) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}

// WriteSidecar writes "<hash>  <filename>" next to the file, in the format
// sha256sum produces, and returns the sidecar path
func (w *checksumWriter) WriteSidecar(filePath string) (string, error) {
	sum, err := w.CalculateChecksum(filePath)
	if err != nil {
		return "", err
	}

	sidecarPath := filePath + ".sha256"
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(filePath))
	if err := os.WriteFile(sidecarPath, []byte(line), 0644); err != nil {
		return "", fmt.Errorf("failed to write checksum file: %w", err)
	}

	return sidecarPath, nil
}

// VerifySidecar verifies a file against its "<hash>  <filename>" sidecar
func (w *checksumWriter) VerifySidecar(ctx context.Context, filePath, sidecarPath string) error {
	//nolint:gosec // G304: sidecarPath is user-provided for verification
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return fmt.Errorf("invalid checksum file format")
	}

	return w.VerifyChecksum(ctx, filePath, fields[0])
}
