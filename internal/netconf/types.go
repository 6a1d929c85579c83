package netconf

import "fmt"

// StaticIPSettings describes one managed static lease declaration.
type StaticIPSettings struct {
	InterfaceName string
	AddressCIDR   string
	RouterAddress string
	DNSServers    []string
}

// FileAccessError reports a failure reading or writing a managed system file.
type FileAccessError struct {
	Path  string
	Cause error
}

// Error describes the file failure including the affected path.
func (accessError *FileAccessError) Error() string {
	return fmt.Sprintf("system file %s: %v", accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying failure.
func (accessError *FileAccessError) Unwrap() error {
	return accessError.Cause
}

// ValidationError reports rejected input before any file is touched.
type ValidationError struct {
	FieldName string
	Message   string
}

// Error describes the invalid field and the reason it was rejected.
func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", validationError.FieldName, validationError.Message)
}
