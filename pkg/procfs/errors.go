package procfs

import (
	"fmt"
)

// IOError reports that a required system-level source could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports content that does not match the expected grammar.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Reason)
}

// ProcessGoneError reports that a per-process source disappeared between
// enumeration and read. Callers enumerating processes treat it as expected.
type ProcessGoneError struct {
	PID int
	Err error
}

func (e *ProcessGoneError) Error() string {
	return fmt.Sprintf("process %d gone: %v", e.PID, e.Err)
}

func (e *ProcessGoneError) Unwrap() error { return e.Err }

// ParseErrorf builds a ParseError for path.
func ParseErrorf(path, format string, args ...any) error {
	return &ParseError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
