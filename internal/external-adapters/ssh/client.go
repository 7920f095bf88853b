// Package ssh provides remote command execution over SSH.
package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/tmakino/opskit/internal/domain/entities"
	"github.com/tmakino/opskit/internal/domain/interfaces/gateways"
	gossh "golang.org/x/crypto/ssh"
)

var _ gateways.RemoteRunner = (*Client)(nil)

// Config describes one SSH target
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	KeyPath  string // PEM private key file; tried before password auth
	Timeout  time.Duration
}

// Client executes commands on a single remote host
type Client struct {
	cfg  Config
	dial func(network, addr string, config *gossh.ClientConfig) (*gossh.Client, error)
}

// NewClient creates a client for the given target
func NewClient(cfg Config) *Client {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		dial: gossh.Dial,
	}
}

// Run executes a command on the remote host and reports captured
// stdout/stderr and the remote exit status. A non-zero remote exit is
// reported, not returned as an error.
func (c *Client) Run(ctx context.Context, command string) (*entities.RunReport, error) {
	if command == "" {
		return nil, fmt.Errorf("command is empty")
	}

	clientConfig, err := buildClientConfig(c.cfg)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	start := time.Now()

	client, err := c.dial("tcp", addr, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	//nolint:errcheck // Defer close
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	//nolint:errcheck // Defer close
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	report := &entities.RunReport{
		Command: command,
		Host:    c.cfg.Host,
	}

	// x/crypto/ssh sessions have no context support; tear the
	// connection down when the context ends mid-run
	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		_ = client.Close()
		<-done
		return nil, fmt.Errorf("remote command interrupted: %w", ctx.Err())
	}

	report.Duration = time.Since(start)
	report.Stdout = stdout.String()
	report.Stderr = stderr.String()

	if err != nil {
		report.Error = err
		var exitErr *gossh.ExitError
		if errors.As(err, &exitErr) {
			report.ExitCode = exitErr.ExitStatus()
			return report, nil
		}
		report.ExitCode = -1
		return report, fmt.Errorf("remote command failed: %w", err)
	}

	report.Success = true
	report.ExitCode = 0
	return report, nil
}

// buildClientConfig assembles auth methods from the target config
func buildClientConfig(cfg Config) (*gossh.ClientConfig, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("user is empty")
	}

	authMethods := make([]gossh.AuthMethod, 0, 2)

	if cfg.KeyPath != "" {
		//nolint:gosec // G304: KeyPath is the operator-provided key file
		keyData, err := os.ReadFile(cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}

		signer, err := gossh.ParsePrivateKey(keyData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		authMethods = append(authMethods, gossh.PublicKeys(signer))
	}

	if cfg.Password != "" {
		authMethods = append(authMethods, gossh.Password(cfg.Password))
	}

	if len(authMethods) == 0 {
		return nil, fmt.Errorf("no authentication configured (need a key file or password)")
	}

	return &gossh.ClientConfig{
		User: cfg.User,
		Auth: authMethods,
		//nolint:gosec // G106: host key pinning is not part of this tool
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         cfg.Timeout,
	}, nil
}
