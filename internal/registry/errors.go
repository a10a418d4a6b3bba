package registry

import "fmt"

// Error represents an invalid registry definition
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registry error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("registry error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FileError represents a failure loading a vendors file
type FileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vendors file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("vendors file %s: %s", e.Path, e.Message)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}
