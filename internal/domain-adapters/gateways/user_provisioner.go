package gateways

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tmakino/opskit/internal/domain/entities"
)

// POSIX portable username, plus the trailing $ convention for machine accounts
var usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

// UserProvisioner creates local users by wrapping the system useradd
// and chpasswd commands
type UserProvisioner struct {
	runner  *CommandRunner
	geteuid func() int
}

// NewUserProvisioner creates a user provisioner backed by the given runner
func NewUserProvisioner(runner *CommandRunner) *UserProvisioner {
	return &UserProvisioner{
		runner:  runner,
		geteuid: os.Geteuid,
	}
}

// UserSpec describes the account to create
type UserSpec struct {
	Name       string
	Comment    string
	Home       string
	Shell      string
	Groups     []string
	System     bool
	CreateHome bool
	Password   string // set via chpasswd after creation when non-empty
}

// Validate checks the spec before any command is run
func (spec *UserSpec) Validate() error {
	if spec.Name == "" {
		return fmt.Errorf("username is empty")
	}
	if !usernamePattern.MatchString(spec.Name) {
		return fmt.Errorf("invalid username: %s", spec.Name)
	}
	if len(spec.Name) > 32 {
		return fmt.Errorf("username too long: %s", spec.Name)
	}
	for _, g := range spec.Groups {
		if !usernamePattern.MatchString(g) {
			return fmt.Errorf("invalid group name: %s", g)
		}
	}
	return nil
}

// Create runs useradd (and chpasswd when a password is given) for the spec
func (p *UserProvisioner) Create(ctx context.Context, spec UserSpec) (*entities.RunReport, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if p.geteuid() != 0 {
		return nil, fmt.Errorf("user creation requires root privileges (euid %d)", p.geteuid())
	}

	if !p.runner.LookPath("useradd") {
		return nil, fmt.Errorf("useradd not found on PATH")
	}

	report := p.runner.Run(ctx, RunConfig{
		Argv:        buildUseraddArgs(spec),
		Description: fmt.Sprintf("useradd %s", spec.Name),
	})
	if !report.Success {
		return report, fmt.Errorf("useradd failed (exit %d): %s", report.ExitCode, strings.TrimSpace(report.Stderr))
	}

	if spec.Password != "" {
		pwReport := p.runner.Run(ctx, RunConfig{
			Argv:  []string{"chpasswd"},
			Stdin: fmt.Sprintf("%s:%s\n", spec.Name, spec.Password),
		})
		if !pwReport.Success {
			return pwReport, fmt.Errorf("chpasswd failed (exit %d): %s", pwReport.ExitCode, strings.TrimSpace(pwReport.Stderr))
		}
	}

	return report, nil
}

// buildUseraddArgs maps a spec onto the useradd command line
func buildUseraddArgs(spec UserSpec) []string {
	args := []string{"useradd"}

	if spec.System {
		args = append(args, "--system")
	}
	if spec.CreateHome {
		args = append(args, "--create-home")
	}
	if spec.Home != "" {
		args = append(args, "--home-dir", spec.Home)
	}
	if spec.Shell != "" {
		args = append(args, "--shell", spec.Shell)
	}
	if spec.Comment != "" {
		args = append(args, "--comment", spec.Comment)
	}
	if len(spec.Groups) > 0 {
		args = append(args, "--groups", strings.Join(spec.Groups, ","))
	}

	args = append(args, spec.Name)
	return args
}
