package audit

import (
	"sort"

	"github.com/DeltaEpiales/PiU/internal/adlist"
)

// findDuplicates returns the sorted set of content lines appearing more than once.
// Comment and blank lines never participate.
func findDuplicates(storeLines []string) []string {
	occurrenceCounts := make(map[string]int)
	for _, storeLine := range storeLines {
		if !adlist.IsContentLine(storeLine) {
			continue
		}
		occurrenceCounts[adlist.Normalize(storeLine)]++
	}

	var duplicateSources []string
	for normalizedSource, occurrenceCount := range occurrenceCounts {
		if occurrenceCount > 1 {
			duplicateSources = append(duplicateSources, normalizedSource)
		}
	}
	sort.Strings(duplicateSources)
	return duplicateSources
}

// deduplicateLines rewrites the store contents as preserved comment and blank
// lines in original order followed by the sorted set of unique content lines.
func deduplicateLines(storeLines []string) []string {
	var preservedLines []string
	seenSources := make(map[string]struct{})
	var uniqueSources []string

	for _, storeLine := range storeLines {
		if !adlist.IsContentLine(storeLine) {
			preservedLines = append(preservedLines, storeLine)
			continue
		}
		normalizedSource := adlist.Normalize(storeLine)
		if _, alreadySeen := seenSources[normalizedSource]; alreadySeen {
			continue
		}
		seenSources[normalizedSource] = struct{}{}
		uniqueSources = append(uniqueSources, normalizedSource)
	}

	sort.Strings(uniqueSources)
	return append(preservedLines, uniqueSources...)
}

// contentSources extracts the normalized content lines in store order.
func contentSources(storeLines []string) []string {
	var sources []string
	for _, storeLine := range storeLines {
		if adlist.IsContentLine(storeLine) {
			sources = append(sources, adlist.Normalize(storeLine))
		}
	}
	return sources
}
