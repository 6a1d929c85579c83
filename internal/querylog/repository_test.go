package querylog_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/DeltaEpiales/PiU/internal/querylog"
)

const createQueriesTableStatement = `CREATE TABLE queries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	type INTEGER NOT NULL,
	status INTEGER NOT NULL,
	domain TEXT NOT NULL,
	client TEXT NOT NULL,
	forward TEXT
)`

type queryRecord struct {
	timestamp time.Time
	status    int
	domain    string
	client    string
}

func newQueryDatabase(testInstance *testing.T, records []queryRecord) string {
	testInstance.Helper()

	databasePath := filepath.Join(testInstance.TempDir(), "pihole-FTL.db")
	database, openError := sql.Open("sqlite", databasePath)
	require.NoError(testInstance, openError)
	defer database.Close()

	_, schemaError := database.Exec(createQueriesTableStatement)
	require.NoError(testInstance, schemaError)

	for _, record := range records {
		_, insertError := database.Exec(
			"INSERT INTO queries (timestamp, type, status, domain, client) VALUES (?, 1, ?, ?, ?)",
			record.timestamp.Unix(), record.status, record.domain, record.client,
		)
		require.NoError(testInstance, insertError)
	}
	return databasePath
}

func TestRepositoryTotals(testInstance *testing.T) {
	currentTime := time.Now()
	databasePath := newQueryDatabase(testInstance, []queryRecord{
		{timestamp: currentTime, status: 2, domain: "example.com", client: "192.168.1.10"},
		{timestamp: currentTime, status: 1, domain: "ads.example.com", client: "192.168.1.10"},
		{timestamp: currentTime, status: 4, domain: "tracker.example.net", client: "192.168.1.11"},
		{timestamp: currentTime, status: 3, domain: "example.org", client: "192.168.1.11"},
	})

	repository := querylog.NewRepository(databasePath)
	totals, totalsError := repository.Totals(context.Background(), 0)

	require.NoError(testInstance, totalsError)
	require.Equal(testInstance, 4, totals.TotalQueries)
	require.Equal(testInstance, 2, totals.BlockedQueries)
	require.InDelta(testInstance, 50.0, totals.BlockedPercentage, 0.01)
}

func TestRepositoryTotalsWindowExcludesOldQueries(testInstance *testing.T) {
	currentTime := time.Now()
	databasePath := newQueryDatabase(testInstance, []queryRecord{
		{timestamp: currentTime, status: 2, domain: "recent.example.com", client: "192.168.1.10"},
		{timestamp: currentTime.Add(-48 * time.Hour), status: 1, domain: "old.example.com", client: "192.168.1.10"},
	})

	repository := querylog.NewRepository(databasePath)
	totals, totalsError := repository.Totals(context.Background(), 24*time.Hour)

	require.NoError(testInstance, totalsError)
	require.Equal(testInstance, 1, totals.TotalQueries)
	require.Zero(testInstance, totals.BlockedQueries)
}

func TestRepositoryTotalsEmptyDatabase(testInstance *testing.T) {
	databasePath := newQueryDatabase(testInstance, nil)

	repository := querylog.NewRepository(databasePath)
	totals, totalsError := repository.Totals(context.Background(), 0)

	require.NoError(testInstance, totalsError)
	require.Zero(testInstance, totals.TotalQueries)
	require.Zero(testInstance, totals.BlockedPercentage)
}

func TestRepositoryTopDomains(testInstance *testing.T) {
	currentTime := time.Now()
	databasePath := newQueryDatabase(testInstance, []queryRecord{
		{timestamp: currentTime, status: 2, domain: "example.com", client: "192.168.1.10"},
		{timestamp: currentTime, status: 2, domain: "example.com", client: "192.168.1.11"},
		{timestamp: currentTime, status: 1, domain: "ads.example.com", client: "192.168.1.10"},
	})

	repository := querylog.NewRepository(databasePath)

	allDomains, allError := repository.TopDomains(context.Background(), 0, 10, false)
	require.NoError(testInstance, allError)
	require.Equal(testInstance, []querylog.DomainCount{
		{Domain: "example.com", Count: 2},
		{Domain: "ads.example.com", Count: 1},
	}, allDomains)

	blockedDomains, blockedError := repository.TopDomains(context.Background(), 0, 10, true)
	require.NoError(testInstance, blockedError)
	require.Equal(testInstance, []querylog.DomainCount{
		{Domain: "ads.example.com", Count: 1},
	}, blockedDomains)
}

func TestRepositoryTopDomainsLimit(testInstance *testing.T) {
	currentTime := time.Now()
	databasePath := newQueryDatabase(testInstance, []queryRecord{
		{timestamp: currentTime, status: 2, domain: "a.example.com", client: "192.168.1.10"},
		{timestamp: currentTime, status: 2, domain: "b.example.com", client: "192.168.1.10"},
		{timestamp: currentTime, status: 2, domain: "c.example.com", client: "192.168.1.10"},
	})

	repository := querylog.NewRepository(databasePath)
	domainCounts, domainsError := repository.TopDomains(context.Background(), 0, 2, false)

	require.NoError(testInstance, domainsError)
	require.Len(testInstance, domainCounts, 2)
}

func TestRepositoryTopClients(testInstance *testing.T) {
	currentTime := time.Now()
	databasePath := newQueryDatabase(testInstance, []queryRecord{
		{timestamp: currentTime, status: 2, domain: "example.com", client: "192.168.1.10"},
		{timestamp: currentTime, status: 1, domain: "ads.example.com", client: "192.168.1.10"},
		{timestamp: currentTime, status: 2, domain: "example.org", client: "192.168.1.11"},
	})

	repository := querylog.NewRepository(databasePath)
	clientCounts, clientsError := repository.TopClients(context.Background(), 0, 10)

	require.NoError(testInstance, clientsError)
	require.Equal(testInstance, []querylog.ClientCount{
		{Client: "192.168.1.10", Count: 2},
		{Client: "192.168.1.11", Count: 1},
	}, clientCounts)
}

func TestRepositoryMissingDatabase(testInstance *testing.T) {
	repository := querylog.NewRepository(filepath.Join(testInstance.TempDir(), "absent.db"))

	_, totalsError := repository.Totals(context.Background(), 0)

	accessError := &querylog.DatabaseAccessError{}
	require.ErrorAs(testInstance, totalsError, &accessError)
}
