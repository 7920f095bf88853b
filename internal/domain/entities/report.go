package entities

import "time"

// RunReport captures the outcome of one command execution, local or remote
type RunReport struct {
	Command  string
	Host     string // empty for local runs
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Failed reports whether the run ended with a non-zero exit code or
// never produced one (spawn failure, timeout)
func (r *RunReport) Failed() bool {
	return !r.Success
}
