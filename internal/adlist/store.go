package adlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	backupSuffixConstant             = ".backup"
	commentPrefixConstant            = "#"
	lineSeparatorConstant            = "\n"
	temporaryFilePatternConstant     = ".adlists-*"
	storeAccessErrorTemplateConstant = "adlist store %s inaccessible: %s"
	storeWriteErrorTemplateConstant  = "unable to rewrite adlist store %s: %w"
	storeBackupErrorTemplateConstant = "unable to back up adlist store %s: %w"
	storeFilePermissionsConstant     = 0o644
)

// StoreAccessError reports that the adlist store could not be read.
type StoreAccessError struct {
	Path  string
	Cause error
}

// Error describes the inaccessible store.
func (accessError *StoreAccessError) Error() string {
	return fmt.Sprintf(storeAccessErrorTemplateConstant, accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (accessError *StoreAccessError) Unwrap() error {
	return accessError.Cause
}

// Store is a newline-delimited adlist source file bound to an explicit path.
type Store struct {
	path string
}

// NewStore constructs a Store for the provided path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the persisted store.
func (store *Store) Path() string {
	return store.path
}

// BackupPath returns the single backup slot derived from the store path.
func (store *Store) BackupPath() string {
	return store.path + backupSuffixConstant
}

// Load reads the store and returns its lines in persisted order.
func (store *Store) Load() ([]string, error) {
	storeContents, readError := os.ReadFile(store.path)
	if readError != nil {
		return nil, &StoreAccessError{Path: store.path, Cause: readError}
	}

	normalizedContents := strings.TrimSuffix(string(storeContents), lineSeparatorConstant)
	if len(normalizedContents) == 0 {
		return nil, nil
	}
	return strings.Split(normalizedContents, lineSeparatorConstant), nil
}

// Write atomically replaces the store contents with the provided lines.
func (store *Store) Write(lines []string) error {
	storeDirectory := filepath.Dir(store.path)
	temporaryFile, temporaryError := os.CreateTemp(storeDirectory, temporaryFilePatternConstant)
	if temporaryError != nil {
		return fmt.Errorf(storeWriteErrorTemplateConstant, store.path, temporaryError)
	}
	temporaryPath := temporaryFile.Name()

	serializedContents := ""
	if len(lines) > 0 {
		serializedContents = strings.Join(lines, lineSeparatorConstant) + lineSeparatorConstant
	}

	if _, writeError := temporaryFile.WriteString(serializedContents); writeError != nil {
		temporaryFile.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf(storeWriteErrorTemplateConstant, store.path, writeError)
	}

	if closeError := temporaryFile.Close(); closeError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(storeWriteErrorTemplateConstant, store.path, closeError)
	}

	if chmodError := os.Chmod(temporaryPath, storeFilePermissionsConstant); chmodError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(storeWriteErrorTemplateConstant, store.path, chmodError)
	}

	if renameError := os.Rename(temporaryPath, store.path); renameError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(storeWriteErrorTemplateConstant, store.path, renameError)
	}

	return nil
}

// Backup copies the current store contents into the single backup slot, overwriting any prior backup.
func (store *Store) Backup() (string, error) {
	storeContents, readError := os.ReadFile(store.path)
	if readError != nil {
		return "", &StoreAccessError{Path: store.path, Cause: readError}
	}

	backupPath := store.BackupPath()
	if writeError := os.WriteFile(backupPath, storeContents, storeFilePermissionsConstant); writeError != nil {
		return "", fmt.Errorf(storeBackupErrorTemplateConstant, store.path, writeError)
	}

	return backupPath, nil
}

// IsContentLine reports whether the provided line participates in dedup and probing.
func IsContentLine(line string) bool {
	trimmedLine := strings.TrimSpace(line)
	if len(trimmedLine) == 0 {
		return false
	}
	return !strings.HasPrefix(trimmedLine, commentPrefixConstant)
}

// Normalize trims surrounding whitespace from a source line.
func Normalize(line string) string {
	return strings.TrimSpace(line)
}
