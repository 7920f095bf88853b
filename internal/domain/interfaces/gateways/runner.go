// Package gateways defines domain contracts for command execution boundaries.
package gateways

import (
	"context"

	"github.com/tmakino/opskit/internal/domain/entities"
)

// RemoteRunner executes a single command on a remote host
type RemoteRunner interface {
	// Run executes command on the configured host and returns a report.
	// A non-zero remote exit code is reported, not returned as an error.
	Run(ctx context.Context, command string) (*entities.RunReport, error)
}
