package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindDuplicates(testInstance *testing.T) {
	testCases := []struct {
		name               string
		storeLines         []string
		expectedDuplicates []string
	}{
		{
			name:               "no duplicates",
			storeLines:         []string{"http://a.com/list", "http://b.com/list"},
			expectedDuplicates: nil,
		},
		{
			name:               "single duplicate",
			storeLines:         []string{"http://a.com/list", "http://a.com/list"},
			expectedDuplicates: []string{"http://a.com/list"},
		},
		{
			name:               "duplicates reported sorted",
			storeLines:         []string{"http://z.com/list", "http://a.com/list", "http://z.com/list", "http://a.com/list"},
			expectedDuplicates: []string{"http://a.com/list", "http://z.com/list"},
		},
		{
			name:               "surrounding whitespace normalized",
			storeLines:         []string{"  http://a.com/list  ", "http://a.com/list"},
			expectedDuplicates: []string{"http://a.com/list"},
		},
		{
			name:               "comments and blanks ignored",
			storeLines:         []string{"# note", "# note", "", "", "http://a.com/list"},
			expectedDuplicates: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedDuplicates, findDuplicates(testCase.storeLines))
		})
	}
}

func TestDeduplicateLines(testInstance *testing.T) {
	testCases := []struct {
		name          string
		storeLines    []string
		expectedLines []string
	}{
		{
			name:          "sorted unique content",
			storeLines:    []string{"http://z.com/list", "http://a.com/list", "http://z.com/list"},
			expectedLines: []string{"http://a.com/list", "http://z.com/list"},
		},
		{
			name:          "comments kept ahead of content",
			storeLines:    []string{"# header", "http://z.com/list", "", "http://a.com/list"},
			expectedLines: []string{"# header", "", "http://a.com/list", "http://z.com/list"},
		},
		{
			name:          "already deduplicated input unchanged",
			storeLines:    []string{"http://a.com/list", "http://b.com/list"},
			expectedLines: []string{"http://a.com/list", "http://b.com/list"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedLines, deduplicateLines(testCase.storeLines))
		})
	}
}

func TestContentSources(testInstance *testing.T) {
	storeLines := []string{"# header", " http://a.com/list ", "", "http://b.com/list"}
	require.Equal(testInstance, []string{"http://a.com/list", "http://b.com/list"}, contentSources(storeLines))
}
