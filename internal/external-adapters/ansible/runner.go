// Package ansible wraps the Ansible command-line tools for programmatic use.
package ansible

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/tmakino/opskit/internal/domain-adapters/gateways"
	"github.com/tmakino/opskit/internal/domain/entities"
)

const (
	playbookBinary = "ansible-playbook"
	adhocBinary    = "ansible"
)

// Runner invokes ansible and ansible-playbook as subprocesses
type Runner struct {
	runner  *gateways.CommandRunner
	timeout time.Duration
}

// NewRunner creates a new Ansible runner
func NewRunner() *Runner {
	return &Runner{
		runner:  gateways.NewCommandRunner(),
		timeout: 30 * time.Minute,
	}
}

// SetTimeout overrides the default per-run timeout
func (r *Runner) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// PlaybookRequest describes one ansible-playbook invocation
type PlaybookRequest struct {
	Playbook  string
	Inventory string
	Limit     string
	Tags      []string
	ExtraVars map[string]string
	Check     bool
	Verbosity int
}

// AdHocRequest describes one ad-hoc module invocation
type AdHocRequest struct {
	Pattern   string
	Module    string
	Args      string
	Inventory string
	Become    bool
}

// IsInstalled checks if the Ansible CLI tools are available in PATH
func IsInstalled() bool {
	_, err := exec.LookPath(playbookBinary)
	return err == nil
}

// RunPlaybook runs a playbook file against an optional inventory.
// A non-zero ansible exit code is reported in the result, not as an
// error; errors are reserved for failures to start the run at all.
func (r *Runner) RunPlaybook(ctx context.Context, req PlaybookRequest) (*entities.RunReport, error) {
	if req.Playbook == "" {
		return nil, fmt.Errorf("playbook path is required")
	}
	if _, err := os.Stat(req.Playbook); err != nil {
		return nil, fmt.Errorf("playbook not found: %w", err)
	}
	if req.Inventory != "" {
		if _, err := os.Stat(req.Inventory); err != nil {
			return nil, fmt.Errorf("inventory not found: %w", err)
		}
	}
	if _, err := exec.LookPath(playbookBinary); err != nil {
		return nil, fmt.Errorf("%s not installed: %w", playbookBinary, err)
	}

	report := r.runner.Run(ctx, gateways.RunConfig{
		Argv:    buildPlaybookArgs(req),
		Timeout: r.timeout,
	})
	if report.ExitCode == -1 && report.Error != nil {
		return report, fmt.Errorf("failed to run %s: %w", playbookBinary, report.Error)
	}

	return report, nil
}

// RunAdHoc runs a single module against a host pattern
func (r *Runner) RunAdHoc(ctx context.Context, req AdHocRequest) (*entities.RunReport, error) {
	if req.Pattern == "" {
		return nil, fmt.Errorf("host pattern is required")
	}
	if req.Module == "" {
		return nil, fmt.Errorf("module name is required")
	}
	if _, err := exec.LookPath(adhocBinary); err != nil {
		return nil, fmt.Errorf("%s not installed: %w", adhocBinary, err)
	}

	report := r.runner.Run(ctx, gateways.RunConfig{
		Argv:    buildAdHocArgs(req),
		Timeout: r.timeout,
	})
	if report.ExitCode == -1 && report.Error != nil {
		return report, fmt.Errorf("failed to run %s: %w", adhocBinary, report.Error)
	}

	return report, nil
}

// GatherFacts runs the setup module against a pattern and parses the
// per-host JSON payloads from the output
func (r *Runner) GatherFacts(ctx context.Context, pattern, inventory string) (map[string]HostFacts, error) {
	report, err := r.RunAdHoc(ctx, AdHocRequest{
		Pattern:   pattern,
		Module:    "setup",
		Inventory: inventory,
	})
	if err != nil {
		return nil, err
	}

	facts, err := ParseFactsOutput(report.Stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse facts output: %w", err)
	}

	return facts, nil
}

// buildPlaybookArgs maps a request onto the ansible-playbook command line
func buildPlaybookArgs(req PlaybookRequest) []string {
	args := []string{playbookBinary}

	if req.Inventory != "" {
		args = append(args, "-i", req.Inventory)
	}
	if req.Limit != "" {
		args = append(args, "--limit", req.Limit)
	}
	if len(req.Tags) > 0 {
		args = append(args, "--tags", strings.Join(req.Tags, ","))
	}
	// Sorted for reproducible command lines
	keys := make([]string, 0, len(req.ExtraVars))
	for key := range req.ExtraVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "-e", fmt.Sprintf("%s=%s", key, req.ExtraVars[key]))
	}
	if req.Check {
		args = append(args, "--check")
	}
	if req.Verbosity > 0 {
		args = append(args, "-"+strings.Repeat("v", req.Verbosity))
	}

	args = append(args, req.Playbook)
	return args
}

// buildAdHocArgs maps a request onto the ansible command line
func buildAdHocArgs(req AdHocRequest) []string {
	args := []string{adhocBinary, req.Pattern, "-m", req.Module}

	if req.Args != "" {
		args = append(args, "-a", req.Args)
	}
	if req.Inventory != "" {
		args = append(args, "-i", req.Inventory)
	}
	if req.Become {
		args = append(args, "--become")
	}

	return args
}
