package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/tmakino/opskit/internal/domain/entities"
)

// CommandRunner handles execution of local commands and shell snippets
type CommandRunner struct {
	defaultTimeout time.Duration
}

// NewCommandRunner creates a new command runner
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		defaultTimeout: 30 * time.Minute,
	}
}

// RunConfig contains configuration for executing a local command.
// Exactly one of Argv or Script must be set: Argv runs a program
// directly, Script runs through /bin/sh -c.
type RunConfig struct {
	Argv        []string
	Script      string
	WorkingDir  string
	Env         map[string]string
	Stdin       string
	Timeout     time.Duration
	Description string
}

// Run executes a command with the given configuration
func (cr *CommandRunner) Run(ctx context.Context, config RunConfig) *entities.RunReport {
	startTime := time.Now()
	report := &entities.RunReport{}

	// Use default timeout if not specified
	timeout := config.Timeout
	if timeout == 0 {
		timeout = cr.defaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cmd *exec.Cmd
	switch {
	case len(config.Argv) > 0:
		//nolint:gosec // G204: Command execution is the purpose of this gateway
		cmd = exec.CommandContext(execCtx, config.Argv[0], config.Argv[1:]...)
		report.Command = strings.Join(config.Argv, " ")
	case config.Script != "":
		// Use /bin/sh for maximum compatibility
		//nolint:gosec // G204: Script execution is intentional and caller-controlled
		cmd = exec.CommandContext(execCtx, "/bin/sh", "-c", config.Script)
		report.Command = config.Script
	default:
		report.ExitCode = -1
		report.Error = fmt.Errorf("run config needs either Argv or Script")
		return report
	}

	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}

	// Build environment variables
	env := os.Environ()
	for key, value := range config.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = env

	if config.Stdin != "" {
		cmd.Stdin = strings.NewReader(config.Stdin)
	}

	// Capture stdout and stderr
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if config.Description != "" {
		fmt.Fprintf(os.Stderr, "Executing: %s\n", config.Description)
	}

	err := cmd.Run()
	report.Duration = time.Since(startTime)
	report.Stdout = stdout.String()
	report.Stderr = stderr.String()

	if err != nil {
		report.Error = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if errors.As(err, &exitErr) {
			report.ExitCode = exitErr.ExitCode()
		} else if execCtx.Err() == context.DeadlineExceeded {
			report.Error = fmt.Errorf("command timeout after %v", timeout)
			report.ExitCode = -1
		} else {
			report.ExitCode = -1
		}
		return report
	}

	report.Success = true
	report.ExitCode = 0
	return report
}

// LookPath reports whether a program is available on PATH
func (cr *CommandRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
