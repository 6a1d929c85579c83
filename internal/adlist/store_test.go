package adlist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeltaEpiales/PiU/internal/adlist"
)

const (
	testStoreFileNameConstant = "adlists.list"
	testStoreContentsConstant = "https://a.example/list\n\n# curated set\nhttps://b.example/list\n"
)

func writeTestStore(testInstance *testing.T, contents string) *adlist.Store {
	testInstance.Helper()
	storePath := filepath.Join(testInstance.TempDir(), testStoreFileNameConstant)
	require.NoError(testInstance, os.WriteFile(storePath, []byte(contents), 0o644))
	return adlist.NewStore(storePath)
}

func TestStoreLoadPreservesOrderAndBlankLines(testInstance *testing.T) {
	store := writeTestStore(testInstance, testStoreContentsConstant)

	loadedLines, loadError := store.Load()
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"https://a.example/list", "", "# curated set", "https://b.example/list"}, loadedLines)
}

func TestStoreLoadEmptyFile(testInstance *testing.T) {
	store := writeTestStore(testInstance, "")

	loadedLines, loadError := store.Load()
	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedLines)
}

func TestStoreLoadMissingFileReturnsStoreAccessError(testInstance *testing.T) {
	store := adlist.NewStore(filepath.Join(testInstance.TempDir(), "absent.list"))

	loadedLines, loadError := store.Load()
	require.Nil(testInstance, loadedLines)

	accessError := &adlist.StoreAccessError{}
	require.ErrorAs(testInstance, loadError, &accessError)
	require.Equal(testInstance, store.Path(), accessError.Path)
}

func TestStoreWriteRoundTrip(testInstance *testing.T) {
	store := writeTestStore(testInstance, testStoreContentsConstant)

	replacementLines := []string{"https://a.example/list", "https://b.example/list"}
	require.NoError(testInstance, store.Write(replacementLines))

	rewrittenContents, readError := os.ReadFile(store.Path())
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "https://a.example/list\nhttps://b.example/list\n", string(rewrittenContents))

	loadedLines, loadError := store.Load()
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, replacementLines, loadedLines)
}

func TestStoreWriteEmptyLines(testInstance *testing.T) {
	store := writeTestStore(testInstance, testStoreContentsConstant)

	require.NoError(testInstance, store.Write(nil))

	rewrittenContents, readError := os.ReadFile(store.Path())
	require.NoError(testInstance, readError)
	require.Empty(testInstance, string(rewrittenContents))
}

func TestStoreBackupMatchesContentsPriorToRewrite(testInstance *testing.T) {
	store := writeTestStore(testInstance, testStoreContentsConstant)

	backupPath, backupError := store.Backup()
	require.NoError(testInstance, backupError)
	require.Equal(testInstance, store.Path()+".backup", backupPath)
	require.Equal(testInstance, store.BackupPath(), backupPath)

	require.NoError(testInstance, store.Write([]string{"https://only.example/list"}))

	backupContents, readError := os.ReadFile(backupPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testStoreContentsConstant, string(backupContents))
}

func TestStoreBackupOverwritesPriorBackup(testInstance *testing.T) {
	store := writeTestStore(testInstance, "https://first.example/list\n")

	_, firstBackupError := store.Backup()
	require.NoError(testInstance, firstBackupError)

	require.NoError(testInstance, store.Write([]string{"https://second.example/list"}))

	_, secondBackupError := store.Backup()
	require.NoError(testInstance, secondBackupError)

	backupContents, readError := os.ReadFile(store.BackupPath())
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "https://second.example/list\n", string(backupContents))
}

func TestIsContentLineClassification(testInstance *testing.T) {
	testCases := []struct {
		name     string
		line     string
		expected bool
	}{
		{name: "url_line", line: "https://a.example/list", expected: true},
		{name: "padded_url_line", line: "  https://a.example/list  ", expected: true},
		{name: "comment_line", line: "# curated set", expected: false},
		{name: "indented_comment_line", line: "   # curated set", expected: false},
		{name: "blank_line", line: "", expected: false},
		{name: "whitespace_line", line: "   \t", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, adlist.IsContentLine(testCase.line))
		})
	}
}
