package audit

import (
	"context"
	"fmt"
	"io"
)

const (
	noDuplicatesMessageConstant           = "No duplicate adlists found.\n"
	duplicatesHeaderTemplateConstant      = "Found %d duplicate adlist source(s):\n"
	duplicateEntryTemplateConstant        = "  %s\n"
	rewritePromptTemplateConstant         = "Remove duplicates and rewrite %s? [y/N]: "
	rewriteDeclinedMessageConstant        = "Keeping store unchanged; probing existing entries.\n"
	rewriteSuccessTemplateConstant        = "Store rewritten; previous contents saved to %s.\n"
	probeHeaderTemplateConstant           = "Probing %d adlist source(s)...\n"
	unreachableWithStatusTemplateConstant = "  UNREACHABLE %s (status %d)\n"
	unreachableWithErrorTemplateConstant  = "  UNREACHABLE %s (%s)\n"
	allReachableMessageConstant           = "All adlists reachable.\n"
	unreachableSummaryTemplateConstant    = "%d of %d adlist source(s) unreachable.\n"
	removalRecommendationMessageConstant  = "Consider removing the flagged sources from the store.\n"
	allProbesFailedWarningMessageConstant = "Warning: every probe failed; the network may be unavailable.\n"
	emptyStoreMessageConstant             = "Store contains no adlist sources.\n"
	confirmationFailureTemplateConstant   = "unable to read confirmation: %w"
)

// Service sequences dedup, optional rewrite, and reachability probing for one audit run.
type Service struct {
	store        ListStore
	prober       Prober
	prompter     ConfirmationPrompter
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service using the provided collaborators.
func NewService(store ListStore, prober Prober, prompter ConfirmationPrompter, outputWriter io.Writer, errorWriter io.Writer) *Service {
	return &Service{
		store:        store,
		prober:       prober,
		prompter:     prompter,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
	}
}

// Run executes one audit pass: Start, Dedup, optional RewriteConfirm, Probe, Report.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (Summary, error) {
	storeLines, loadError := service.store.Load()
	if loadError != nil {
		return Summary{}, loadError
	}

	summary := Summary{Duplicates: findDuplicates(storeLines)}

	if len(summary.Duplicates) == 0 {
		fmt.Fprint(service.outputWriter, noDuplicatesMessageConstant)
	} else {
		fmt.Fprintf(service.outputWriter, duplicatesHeaderTemplateConstant, len(summary.Duplicates))
		for _, duplicateSource := range summary.Duplicates {
			fmt.Fprintf(service.outputWriter, duplicateEntryTemplateConstant, duplicateSource)
		}

		rewriteConfirmed, confirmError := service.confirmRewrite(options)
		if confirmError != nil {
			return Summary{}, fmt.Errorf(confirmationFailureTemplateConstant, confirmError)
		}

		if rewriteConfirmed {
			backupPath, backupError := service.store.Backup()
			if backupError != nil {
				return Summary{}, backupError
			}

			storeLines = deduplicateLines(storeLines)
			if writeError := service.store.Write(storeLines); writeError != nil {
				return Summary{}, writeError
			}

			summary.RewriteApplied = true
			summary.BackupPath = backupPath
			fmt.Fprintf(service.outputWriter, rewriteSuccessTemplateConstant, backupPath)
		} else {
			fmt.Fprint(service.outputWriter, rewriteDeclinedMessageConstant)
		}
	}

	probeSources := contentSources(storeLines)
	if len(probeSources) == 0 {
		fmt.Fprint(service.outputWriter, emptyStoreMessageConstant)
		return summary, nil
	}

	fmt.Fprintf(service.outputWriter, probeHeaderTemplateConstant, len(probeSources))

	for _, probeSource := range probeSources {
		if contextError := executionContext.Err(); contextError != nil {
			return Summary{}, contextError
		}

		probeResult := service.prober.Check(executionContext, probeSource)
		summary.ProbedCount++
		if probeResult.Reachable {
			continue
		}

		summary.UnreachableCount++
		summary.Unreachable = append(summary.Unreachable, probeResult)
		service.reportUnreachable(probeResult)
	}

	service.reportSummary(summary)
	return summary, nil
}

func (service *Service) confirmRewrite(options CommandOptions) (bool, error) {
	if options.AssumeYes {
		return true, nil
	}
	if service.prompter == nil {
		return false, nil
	}
	return service.prompter.Confirm(fmt.Sprintf(rewritePromptTemplateConstant, service.store.Path()))
}

func (service *Service) reportUnreachable(probeResult ProbeResult) {
	if probeResult.StatusCode > 0 {
		fmt.Fprintf(service.outputWriter, unreachableWithStatusTemplateConstant, probeResult.Source, probeResult.StatusCode)
		return
	}

	failureDescription := "no response"
	if probeResult.Err != nil {
		failureDescription = probeResult.Err.Error()
	}
	fmt.Fprintf(service.outputWriter, unreachableWithErrorTemplateConstant, probeResult.Source, failureDescription)
}

func (service *Service) reportSummary(summary Summary) {
	if summary.UnreachableCount == 0 {
		fmt.Fprint(service.outputWriter, allReachableMessageConstant)
		return
	}

	fmt.Fprintf(service.outputWriter, unreachableSummaryTemplateConstant, summary.UnreachableCount, summary.ProbedCount)
	fmt.Fprint(service.outputWriter, removalRecommendationMessageConstant)

	if summary.UnreachableCount == summary.ProbedCount {
		fmt.Fprint(service.errorWriter, allProbesFailedWarningMessageConstant)
	}
}
