package detect

import "fmt"

// ParseError represents a failure parsing page HTML
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// FrameError represents a failure resolving inline frames
type FrameError struct {
	Message string
	Cause   error
}

func (e *FrameError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("frame error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("frame error: %s", e.Message)
}

func (e *FrameError) Unwrap() error {
	return e.Cause
}
