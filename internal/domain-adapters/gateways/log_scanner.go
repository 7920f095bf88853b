package gateways

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
)

// Log lines can be long, syslog caps at 8k but journald exports exceed it
const maxLogLineBytes = 1024 * 1024

// LogScanner searches log files for lines matching a pattern
type LogScanner struct{}

// NewLogScanner creates a new log scanner
func NewLogScanner() *LogScanner {
	return &LogScanner{}
}

// LogScanConfig contains configuration for one scan
type LogScanConfig struct {
	Pattern    string
	IgnoreCase bool
	Invert     bool // report lines NOT matching the pattern
	MaxMatches int  // 0 means unlimited
}

// LogMatch is one matching line with its 1-based line number
type LogMatch struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// ScanFile scans a log file for lines matching the configured pattern
func (s *LogScanner) ScanFile(path string, config LogScanConfig) ([]LogMatch, error) {
	//nolint:gosec // G304: path is the user-provided log file to search
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	return s.Scan(f, config)
}

// Scan scans a reader line by line for matches
func (s *LogScanner) Scan(r io.Reader, config LogScanConfig) ([]LogMatch, error) {
	if config.Pattern == "" {
		return nil, fmt.Errorf("pattern is empty")
	}

	pattern := config.Pattern
	if config.IgnoreCase {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLogLineBytes)

	matches := make([]LogMatch, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		matched := re.MatchString(line)
		if config.Invert {
			matched = !matched
		}
		if !matched {
			continue
		}

		matches = append(matches, LogMatch{Line: lineNo, Text: line})
		if config.MaxMatches > 0 && len(matches) >= config.MaxMatches {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return matches, fmt.Errorf("failed to read log: %w", err)
	}

	return matches, nil
}
