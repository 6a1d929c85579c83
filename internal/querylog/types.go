package querylog

import "fmt"

// Totals aggregates query counts over the requested window.
type Totals struct {
	TotalQueries      int
	BlockedQueries    int
	BlockedPercentage float64
}

// DomainCount pairs a queried domain with its occurrence count.
type DomainCount struct {
	Domain string
	Count  int
}

// ClientCount pairs a client address with its query count.
type ClientCount struct {
	Client string
	Count  int
}

// DatabaseAccessError reports a failure opening or querying the FTL database.
type DatabaseAccessError struct {
	Path  string
	Cause error
}

// Error describes the database failure including the affected path.
func (accessError *DatabaseAccessError) Error() string {
	return fmt.Sprintf("query database %s: %v", accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying failure.
func (accessError *DatabaseAccessError) Unwrap() error {
	return accessError.Cause
}
