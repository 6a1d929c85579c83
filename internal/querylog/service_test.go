package querylog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeltaEpiales/PiU/internal/querylog"
)

type stubStatisticsSource struct {
	totals       querylog.Totals
	totalsError  error
	domainCounts []querylog.DomainCount
	clientCounts []querylog.ClientCount

	observedWindow      time.Duration
	observedLimit       int
	observedBlockedOnly bool
}

func (source *stubStatisticsSource) Totals(executionContext context.Context, window time.Duration) (querylog.Totals, error) {
	source.observedWindow = window
	return source.totals, source.totalsError
}

func (source *stubStatisticsSource) TopDomains(executionContext context.Context, window time.Duration, limit int, blockedOnly bool) ([]querylog.DomainCount, error) {
	source.observedLimit = limit
	source.observedBlockedOnly = blockedOnly
	return source.domainCounts, nil
}

func (source *stubStatisticsSource) TopClients(executionContext context.Context, window time.Duration, limit int) ([]querylog.ClientCount, error) {
	return source.clientCounts, nil
}

func TestServiceReport(testInstance *testing.T) {
	source := &stubStatisticsSource{
		totals:       querylog.Totals{TotalQueries: 120, BlockedQueries: 30, BlockedPercentage: 25},
		domainCounts: []querylog.DomainCount{{Domain: "example.com", Count: 40}},
		clientCounts: []querylog.ClientCount{{Client: "192.168.1.10", Count: 80}},
	}
	var outputBuffer bytes.Buffer

	service := querylog.NewService(source, &outputBuffer)
	reportError := service.Report(context.Background(), querylog.ReportOptions{Window: 24 * time.Hour, Limit: 10})

	require.NoError(testInstance, reportError)
	require.Equal(testInstance, 24*time.Hour, source.observedWindow)
	require.Equal(testInstance, 10, source.observedLimit)

	reportText := outputBuffer.String()
	require.Contains(testInstance, reportText, "Queries (last 24h0m0s): 120 total, 30 blocked (25.0%)")
	require.Contains(testInstance, reportText, "Top domains:")
	require.Contains(testInstance, reportText, "example.com")
	require.Contains(testInstance, reportText, "Top clients:")
	require.Contains(testInstance, reportText, "192.168.1.10")
}

func TestServiceReportBlockedOnlyHeader(testInstance *testing.T) {
	source := &stubStatisticsSource{
		totals:       querylog.Totals{TotalQueries: 5, BlockedQueries: 5, BlockedPercentage: 100},
		domainCounts: []querylog.DomainCount{{Domain: "ads.example.com", Count: 5}},
	}
	var outputBuffer bytes.Buffer

	service := querylog.NewService(source, &outputBuffer)
	reportError := service.Report(context.Background(), querylog.ReportOptions{Limit: 10, BlockedOnly: true})

	require.NoError(testInstance, reportError)
	require.True(testInstance, source.observedBlockedOnly)
	require.Contains(testInstance, outputBuffer.String(), "Top blocked domains:")
}

func TestServiceReportEmptyWindow(testInstance *testing.T) {
	source := &stubStatisticsSource{}
	var outputBuffer bytes.Buffer

	service := querylog.NewService(source, &outputBuffer)
	reportError := service.Report(context.Background(), querylog.ReportOptions{Window: time.Hour, Limit: 10})

	require.NoError(testInstance, reportError)
	require.Contains(testInstance, outputBuffer.String(), "No queries recorded in the selected window.")
	require.NotContains(testInstance, outputBuffer.String(), "Top domains:")
}

func TestServiceReportSourceFailure(testInstance *testing.T) {
	sourceFailure := errors.New("database locked")
	source := &stubStatisticsSource{totalsError: sourceFailure}

	service := querylog.NewService(source, &bytes.Buffer{})
	reportError := service.Report(context.Background(), querylog.ReportOptions{Limit: 10})

	require.ErrorIs(testInstance, reportError, sourceFailure)
}
