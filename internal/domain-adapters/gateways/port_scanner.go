package gateways

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/tmakino/opskit/internal/domain/entities"
)

// PortScanner performs TCP connect scans against a single host
type PortScanner struct {
	timeout     time.Duration
	concurrency int
}

// NewPortScanner creates a port scanner with the given per-connection
// timeout and worker count. Zero values fall back to 2s and 64 workers.
func NewPortScanner(timeout time.Duration, concurrency int) *PortScanner {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if concurrency <= 0 {
		concurrency = 64
	}
	return &PortScanner{
		timeout:     timeout,
		concurrency: concurrency,
	}
}

// Scan attempts a TCP connection to every port in [firstPort, lastPort].
// A port counts as open only when the dial succeeds; refused and timed
// out connections are treated as closed.
func (s *PortScanner) Scan(ctx context.Context, host string, firstPort, lastPort int) (*entities.ScanReport, error) {
	if host == "" {
		return nil, fmt.Errorf("host is empty")
	}
	if firstPort < 1 || lastPort > 65535 || firstPort > lastPort {
		return nil, fmt.Errorf("invalid port range %d-%d", firstPort, lastPort)
	}

	start := time.Now()

	ports := make(chan int)
	open := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dialer := net.Dialer{Timeout: s.timeout}
			for port := range ports {
				addr := net.JoinHostPort(host, strconv.Itoa(port))
				conn, err := dialer.DialContext(ctx, "tcp", addr)
				if err != nil {
					continue
				}
				//nolint:errcheck // Close on probe connection
				conn.Close()
				open <- port
			}
		}()
	}

	go func() {
		defer close(ports)
		for port := firstPort; port <= lastPort; port++ {
			select {
			case ports <- port:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(open)
	}()

	openPorts := make([]int, 0)
	for port := range open {
		openPorts = append(openPorts, port)
	}
	sort.Ints(openPorts)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	elapsed := time.Since(start)
	return &entities.ScanReport{
		Host:      host,
		FirstPort: firstPort,
		LastPort:  lastPort,
		OpenPorts: openPorts,
		Scanned:   lastPort - firstPort + 1,
		Elapsed:   elapsed,
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}
