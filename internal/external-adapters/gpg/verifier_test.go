package gpg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Test importing key from nonexistent file
func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier()

	err := v.ImportKeyFromFile("/nonexistent/key.asc")

	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}

	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

// Test importing key from file with no keys
func TestVerifier_ImportKeyFromFile_InvalidFile(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	keyPath := filepath.Join(tmpDir, "empty.asc")
	if err := os.WriteFile(keyPath, []byte("not a gpg key"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.ImportKeyFromFile(keyPath)

	if err == nil {
		t.Fatal("Expected error for invalid key file, got nil")
	}

	if v.KeyringSize() != 0 {
		t.Errorf("Keyring size = %d after failed import, want 0", v.KeyringSize())
	}
}

// Test that verification refuses to run without keys
func TestVerifier_VerifySignatureFromFile_NoKeys(t *testing.T) {
	v := NewVerifier()
	tmpDir := t.TempDir()

	dataPath := filepath.Join(tmpDir, "archive.tar.gz")
	sigPath := filepath.Join(tmpDir, "archive.tar.gz.asc")
	if err := os.WriteFile(dataPath, []byte("data"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sigPath, []byte("sig"), 0600); err != nil {
		t.Fatal(err)
	}

	err := v.VerifySignatureFromFile(dataPath, sigPath)

	if err == nil {
		t.Fatal("Expected error with empty keyring, got nil")
	}

	if !strings.Contains(err.Error(), "no GPG keys imported") {
		t.Errorf("Expected 'no GPG keys imported' error, got: %v", err)
	}
}

// Test KEYS file import against a mock server
func TestVerifier_ImportKeysFromURL_BadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := NewVerifier()
	err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS")

	if err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}

	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("Expected status error, got: %v", err)
	}
}

func TestVerifier_ImportKeysFromURL_NotAKeyring(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("definitely not an armored keyring"))
	}))
	defer server.Close()

	v := NewVerifier()
	err := v.ImportKeysFromURL(context.Background(), server.URL+"/KEYS")

	if err == nil {
		t.Fatal("Expected error for malformed KEYS file, got nil")
	}
}
