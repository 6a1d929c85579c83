package querylog

import (
	"context"
	"fmt"
	"io"
	"time"
)

const (
	totalsTemplateConstant           = "Queries (last %s): %d total, %d blocked (%.1f%%)\n"
	totalsAllTimeTemplateConstant    = "Queries (all time): %d total, %d blocked (%.1f%%)\n"
	topDomainsHeaderConstant         = "Top domains:\n"
	topBlockedDomainsHeaderConstant  = "Top blocked domains:\n"
	topClientsHeaderConstant         = "Top clients:\n"
	countedEntryTemplateConstant     = "  %6d  %s\n"
	noRecordedQueriesMessageConstant = "No queries recorded in the selected window.\n"
)

// StatisticsSource answers the aggregate queries the report is built from.
type StatisticsSource interface {
	Totals(executionContext context.Context, window time.Duration) (Totals, error)
	TopDomains(executionContext context.Context, window time.Duration, limit int, blockedOnly bool) ([]DomainCount, error)
	TopClients(executionContext context.Context, window time.Duration, limit int) ([]ClientCount, error)
}

// ReportOptions selects the window and list sizes for a statistics report.
type ReportOptions struct {
	Window      time.Duration
	Limit       int
	BlockedOnly bool
}

// Service renders human-readable statistics reports from a StatisticsSource.
type Service struct {
	source       StatisticsSource
	outputWriter io.Writer
}

// NewService constructs a Service over the provided source and writer.
func NewService(source StatisticsSource, outputWriter io.Writer) *Service {
	return &Service{source: source, outputWriter: outputWriter}
}

// Report writes totals, top domains, and top clients for the window.
func (service *Service) Report(executionContext context.Context, options ReportOptions) error {
	totals, totalsError := service.source.Totals(executionContext, options.Window)
	if totalsError != nil {
		return totalsError
	}

	if options.Window > 0 {
		fmt.Fprintf(service.outputWriter, totalsTemplateConstant, options.Window, totals.TotalQueries, totals.BlockedQueries, totals.BlockedPercentage)
	} else {
		fmt.Fprintf(service.outputWriter, totalsAllTimeTemplateConstant, totals.TotalQueries, totals.BlockedQueries, totals.BlockedPercentage)
	}

	if totals.TotalQueries == 0 {
		fmt.Fprint(service.outputWriter, noRecordedQueriesMessageConstant)
		return nil
	}

	domainCounts, domainsError := service.source.TopDomains(executionContext, options.Window, options.Limit, options.BlockedOnly)
	if domainsError != nil {
		return domainsError
	}

	domainsHeader := topDomainsHeaderConstant
	if options.BlockedOnly {
		domainsHeader = topBlockedDomainsHeaderConstant
	}
	fmt.Fprint(service.outputWriter, domainsHeader)
	for _, domainCount := range domainCounts {
		fmt.Fprintf(service.outputWriter, countedEntryTemplateConstant, domainCount.Count, domainCount.Domain)
	}

	clientCounts, clientsError := service.source.TopClients(executionContext, options.Window, options.Limit)
	if clientsError != nil {
		return clientsError
	}

	fmt.Fprint(service.outputWriter, topClientsHeaderConstant)
	for _, clientCount := range clientCounts {
		fmt.Fprintf(service.outputWriter, countedEntryTemplateConstant, clientCount.Count, clientCount.Client)
	}
	return nil
}
