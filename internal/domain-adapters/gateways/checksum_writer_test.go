package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChecksumWriter_CalculateChecksum(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data.txt")
	content := []byte("opskit checksum test\n")
	if err := os.WriteFile(file, content, 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	want := sha256.Sum256(content)

	w := NewChecksumWriter()
	got, err := w.CalculateChecksum(file)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}

	if got != hex.EncodeToString(want[:]) {
		t.Errorf("CalculateChecksum() = %s, want %s", got, hex.EncodeToString(want[:]))
	}
}

func TestChecksumWriter_VerifyChecksum(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(file, []byte("payload"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	w := NewChecksumWriter()
	sum, err := w.CalculateChecksum(file)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}

	if err := w.VerifyChecksum(context.Background(), file, sum); err != nil {
		t.Errorf("VerifyChecksum() error = %v, want nil", err)
	}

	if err := w.VerifyChecksum(context.Background(), file, strings.Repeat("0", 64)); err == nil {
		t.Error("VerifyChecksum() should fail for wrong checksum")
	}
}

func TestChecksumWriter_Sidecar_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "backup.tar.gz")
	if err := os.WriteFile(file, []byte("not really a tarball"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	w := NewChecksumWriter()
	sidecar, err := w.WriteSidecar(file)
	if err != nil {
		t.Fatalf("WriteSidecar() error = %v", err)
	}

	if sidecar != file+".sha256" {
		t.Errorf("WriteSidecar() path = %s, want %s", sidecar, file+".sha256")
	}

	data, err := os.ReadFile(sidecar)
	if err != nil {
		t.Fatalf("Failed to read sidecar: %v", err)
	}
	if !strings.HasSuffix(strings.TrimRight(string(data), "\n"), "  backup.tar.gz") {
		t.Errorf("sidecar content = %q, want sha256sum format", string(data))
	}

	if err := w.VerifySidecar(context.Background(), file, sidecar); err != nil {
		t.Errorf("VerifySidecar() error = %v, want nil", err)
	}
}

func TestChecksumWriter_VerifySidecar_Tampered(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "backup.tar.gz")
	if err := os.WriteFile(file, []byte("original"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	w := NewChecksumWriter()
	sidecar, err := w.WriteSidecar(file)
	if err != nil {
		t.Fatalf("WriteSidecar() error = %v", err)
	}

	if err := os.WriteFile(file, []byte("tampered"), 0600); err != nil {
		t.Fatalf("Failed to overwrite file: %v", err)
	}

	if err := w.VerifySidecar(context.Background(), file, sidecar); err == nil {
		t.Error("VerifySidecar() should fail after tampering")
	}
}

func TestChecksumWriter_VerifySidecar_BadFormat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data")
	sidecar := filepath.Join(dir, "data.sha256")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(sidecar, []byte("   \n"), 0600); err != nil {
		t.Fatalf("Failed to write sidecar: %v", err)
	}

	w := NewChecksumWriter()
	if err := w.VerifySidecar(context.Background(), file, sidecar); err == nil {
		t.Error("VerifySidecar() should fail for empty sidecar")
	}
}
