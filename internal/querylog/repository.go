package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverNameConstant           = "sqlite"
	readOnlyDataSourceTemplateConstant = "file:%s?mode=ro"

	// Gravity, regex, and CNAME-derived block statuses recorded by FTL.
	blockedStatusSetConstant = "(1, 4, 5, 6, 7, 8, 9, 10, 11)"

	totalsQueryConstant = "SELECT COUNT(*), COALESCE(SUM(CASE WHEN status IN " + blockedStatusSetConstant + " THEN 1 ELSE 0 END), 0) FROM queries WHERE timestamp >= ?"

	topDomainsQueryConstant = "SELECT domain, COUNT(*) AS query_count FROM queries WHERE timestamp >= ? GROUP BY domain ORDER BY query_count DESC, domain ASC LIMIT ?"

	topBlockedDomainsQueryConstant = "SELECT domain, COUNT(*) AS query_count FROM queries WHERE timestamp >= ? AND status IN " + blockedStatusSetConstant + " GROUP BY domain ORDER BY query_count DESC, domain ASC LIMIT ?"

	topClientsQueryConstant = "SELECT client, COUNT(*) AS query_count FROM queries WHERE timestamp >= ? GROUP BY client ORDER BY query_count DESC, client ASC LIMIT ?"
)

// Repository answers read-only statistics queries against the FTL database.
type Repository struct {
	databasePath string
	timeSource   func() time.Time
}

// NewRepository constructs a Repository for the database at the provided path.
func NewRepository(databasePath string) *Repository {
	return &Repository{databasePath: databasePath, timeSource: time.Now}
}

// Totals counts total and blocked queries within the window; a non-positive
// window covers the full database.
func (repository *Repository) Totals(executionContext context.Context, window time.Duration) (Totals, error) {
	database, openError := repository.open()
	if openError != nil {
		return Totals{}, openError
	}
	defer database.Close()

	totalsRow := database.QueryRowContext(executionContext, totalsQueryConstant, repository.windowCutoff(window))

	var totals Totals
	if scanError := totalsRow.Scan(&totals.TotalQueries, &totals.BlockedQueries); scanError != nil {
		return Totals{}, &DatabaseAccessError{Path: repository.databasePath, Cause: scanError}
	}

	if totals.TotalQueries > 0 {
		totals.BlockedPercentage = float64(totals.BlockedQueries) / float64(totals.TotalQueries) * 100
	}
	return totals, nil
}

// TopDomains lists the most queried domains within the window, optionally
// restricted to blocked queries.
func (repository *Repository) TopDomains(executionContext context.Context, window time.Duration, limit int, blockedOnly bool) ([]DomainCount, error) {
	database, openError := repository.open()
	if openError != nil {
		return nil, openError
	}
	defer database.Close()

	statement := topDomainsQueryConstant
	if blockedOnly {
		statement = topBlockedDomainsQueryConstant
	}

	domainRows, queryError := database.QueryContext(executionContext, statement, repository.windowCutoff(window), limit)
	if queryError != nil {
		return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: queryError}
	}
	defer domainRows.Close()

	var domainCounts []DomainCount
	for domainRows.Next() {
		var domainCount DomainCount
		if scanError := domainRows.Scan(&domainCount.Domain, &domainCount.Count); scanError != nil {
			return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: scanError}
		}
		domainCounts = append(domainCounts, domainCount)
	}
	if rowsError := domainRows.Err(); rowsError != nil {
		return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: rowsError}
	}
	return domainCounts, nil
}

// TopClients lists the clients issuing the most queries within the window.
func (repository *Repository) TopClients(executionContext context.Context, window time.Duration, limit int) ([]ClientCount, error) {
	database, openError := repository.open()
	if openError != nil {
		return nil, openError
	}
	defer database.Close()

	clientRows, queryError := database.QueryContext(executionContext, topClientsQueryConstant, repository.windowCutoff(window), limit)
	if queryError != nil {
		return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: queryError}
	}
	defer clientRows.Close()

	var clientCounts []ClientCount
	for clientRows.Next() {
		var clientCount ClientCount
		if scanError := clientRows.Scan(&clientCount.Client, &clientCount.Count); scanError != nil {
			return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: scanError}
		}
		clientCounts = append(clientCounts, clientCount)
	}
	if rowsError := clientRows.Err(); rowsError != nil {
		return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: rowsError}
	}
	return clientCounts, nil
}

func (repository *Repository) open() (*sql.DB, error) {
	database, openError := sql.Open(sqliteDriverNameConstant, fmt.Sprintf(readOnlyDataSourceTemplateConstant, repository.databasePath))
	if openError != nil {
		return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: openError}
	}
	if pingError := database.Ping(); pingError != nil {
		database.Close()
		return nil, &DatabaseAccessError{Path: repository.databasePath, Cause: pingError}
	}
	return database, nil
}

func (repository *Repository) windowCutoff(window time.Duration) int64 {
	if window <= 0 {
		return 0
	}
	return repository.timeSource().Add(-window).Unix()
}
