package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "opskit.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Serve.Addr != ":8080" {
		t.Errorf("default addr = %s, want :8080", cfg.Serve.Addr)
	}
	if cfg.Serve.RunTimeout != 30*time.Minute {
		t.Errorf("default run timeout = %v, want 30m", cfg.Serve.RunTimeout)
	}
	if cfg.Mail.Port != 587 {
		t.Errorf("default mail port = %d, want 587", cfg.Mail.Port)
	}
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
[serve]
addr = ":9000"
auth_token = "sekrit"
run_timeout = "15m"

[mail]
host = "smtp.example.com"
port = 25
username = "notifier"
password = "hunter2"
from = "opskit@example.com"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Serve.Addr != ":9000" {
		t.Errorf("addr = %s, want :9000", cfg.Serve.Addr)
	}
	if cfg.Serve.AuthToken != "sekrit" {
		t.Errorf("auth token = %s, want sekrit", cfg.Serve.AuthToken)
	}
	if cfg.Serve.RunTimeout != 15*time.Minute {
		t.Errorf("run timeout = %v, want 15m", cfg.Serve.RunTimeout)
	}
	if cfg.Mail.Host != "smtp.example.com" {
		t.Errorf("mail host = %s, want smtp.example.com", cfg.Mail.Host)
	}
	if cfg.Mail.Port != 25 {
		t.Errorf("mail port = %d, want 25", cfg.Mail.Port)
	}
	if cfg.Mail.From != "opskit@example.com" {
		t.Errorf("mail from = %s, want opskit@example.com", cfg.Mail.From)
	}
}

// Keys absent from the file keep their defaults
func TestLoadConfig_PartialFile(t *testing.T) {
	path := writeConfig(t, `
[mail]
host = "smtp.example.com"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Mail.Host != "smtp.example.com" {
		t.Errorf("mail host = %s, want smtp.example.com", cfg.Mail.Host)
	}
	if cfg.Mail.Port != 587 {
		t.Errorf("mail port = %d, want default 587", cfg.Mail.Port)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("addr = %s, want default :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	path := writeConfig(t, `
[serve]
run_timeout = "soon"
`)

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() should fail for an unparseable timeout")
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	path := writeConfig(t, "not [valid toml")

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() should fail for malformed TOML")
	}
}
