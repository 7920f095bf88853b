package gateways

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCommandRunner_Run_ScriptSuccess(t *testing.T) {
	cr := NewCommandRunner()

	report := cr.Run(context.Background(), RunConfig{
		Script:      "echo 'Hello, World!'",
		Description: "test echo",
	})

	if !report.Success {
		t.Errorf("Run() failed: %v", report.Error)
	}

	if report.ExitCode != 0 {
		t.Errorf("Run() exit code = %d, want 0", report.ExitCode)
	}

	if report.Stdout != "Hello, World!\n" {
		t.Errorf("Run() stdout = %q, want %q", report.Stdout, "Hello, World!\n")
	}
}

func TestCommandRunner_Run_Argv(t *testing.T) {
	cr := NewCommandRunner()

	report := cr.Run(context.Background(), RunConfig{
		Argv: []string{"echo", "plain", "argv"},
	})

	if !report.Success {
		t.Errorf("Run() failed: %v", report.Error)
	}

	if report.Stdout != "plain argv\n" {
		t.Errorf("Run() stdout = %q, want %q", report.Stdout, "plain argv\n")
	}

	if report.Command != "echo plain argv" {
		t.Errorf("Run() command = %q, want %q", report.Command, "echo plain argv")
	}
}

func TestCommandRunner_Run_NonZeroExit(t *testing.T) {
	cr := NewCommandRunner()

	report := cr.Run(context.Background(), RunConfig{
		Script: "exit 42",
	})

	if report.Success {
		t.Error("Run() should have failed")
	}

	if report.ExitCode != 42 {
		t.Errorf("Run() exit code = %d, want 42", report.ExitCode)
	}
}

func TestCommandRunner_Run_Environment(t *testing.T) {
	cr := NewCommandRunner()

	report := cr.Run(context.Background(), RunConfig{
		Script: "echo $TEST_VAR",
		Env: map[string]string{
			"TEST_VAR": "test_value",
		},
	})

	if !report.Success {
		t.Errorf("Run() failed: %v", report.Error)
	}

	if report.Stdout != "test_value\n" {
		t.Errorf("Run() stdout = %q, want %q", report.Stdout, "test_value\n")
	}
}

func TestCommandRunner_Run_Stdin(t *testing.T) {
	cr := NewCommandRunner()

	report := cr.Run(context.Background(), RunConfig{
		Argv:  []string{"cat"},
		Stdin: "piped input\n",
	})

	if !report.Success {
		t.Errorf("Run() failed: %v", report.Error)
	}

	if report.Stdout != "piped input\n" {
		t.Errorf("Run() stdout = %q, want %q", report.Stdout, "piped input\n")
	}
}

func TestCommandRunner_Run_Timeout(t *testing.T) {
	cr := NewCommandRunner()

	report := cr.Run(context.Background(), RunConfig{
		Script:  "sleep 5",
		Timeout: 100 * time.Millisecond,
	})

	if report.Success {
		t.Error("Run() should have timed out")
	}

	if report.Error == nil {
		t.Error("Run() should have returned an error")
	}
}

func TestCommandRunner_Run_WorkingDirectory(t *testing.T) {
	cr := NewCommandRunner()
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	report := cr.Run(context.Background(), RunConfig{
		Script:     "ls test.txt",
		WorkingDir: tempDir,
	})

	if !report.Success {
		t.Errorf("Run() failed: %v", report.Error)
	}

	if report.Stdout != "test.txt\n" {
		t.Errorf("Run() stdout = %q, want %q", report.Stdout, "test.txt\n")
	}
}

func TestCommandRunner_Run_EmptyConfig(t *testing.T) {
	cr := NewCommandRunner()

	report := cr.Run(context.Background(), RunConfig{})

	if report.Success {
		t.Error("Run() should have failed for empty config")
	}

	if report.Error == nil {
		t.Error("Run() should have returned an error for empty config")
	}
}

func TestCommandRunner_LookPath(t *testing.T) {
	cr := NewCommandRunner()

	if !cr.LookPath("sh") {
		t.Error("LookPath(sh) = false, want true")
	}

	if cr.LookPath("definitely-not-a-real-binary-name") {
		t.Error("LookPath() = true for nonexistent binary")
	}
}
