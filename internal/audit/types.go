package audit

import "time"

// ProbeResult captures the classification of a single adlist source check.
type ProbeResult struct {
	Source     string
	Reachable  bool
	StatusCode int
	Err        error
}

// CommandOptions captures the configurable parameters for one audit run.
type CommandOptions struct {
	StorePath    string
	ProbeTimeout time.Duration
	AssumeYes    bool
}

// Summary aggregates the observable outcomes of one audit run.
type Summary struct {
	Duplicates       []string
	RewriteApplied   bool
	BackupPath       string
	ProbedCount      int
	UnreachableCount int
	Unreachable      []ProbeResult
}
