package fsx

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every failure kind.
// Each *Error matches exactly one kind sentinel plus ErrIO with errors.Is().
//
// Example usage:
//
//	_, err := fs.CreateFile("out.txt", data, false)
//	if errors.Is(err, fsx.ErrAlreadyExists) {
//	    // retry with overwrite or pick another name
//	}
var (
	// ErrIO matches every error produced by a Filesystem.
	ErrIO = errors.New("filesystem error")

	// ErrIOFailure indicates the underlying OS call itself failed.
	ErrIOFailure = errors.New("i/o failure")

	// ErrNotADirectory indicates a directory was required.
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotAFile indicates a regular file was required.
	ErrNotAFile = errors.New("not a file")

	// ErrAlreadyExists indicates overwrite was disabled and the target exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrPathConflict indicates the path exists but has the wrong kind.
	ErrPathConflict = errors.New("path conflict")

	// ErrNotEmpty indicates a non-recursive delete of a non-empty directory.
	ErrNotEmpty = errors.New("directory not empty")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Kind classifies a filesystem failure.
type Kind int

const (
	KindIOFailure Kind = iota
	KindNotADirectory
	KindNotAFile
	KindAlreadyExists
	KindPathConflict
	KindNotEmpty
)

func (k Kind) String() string {
	return k.sentinel().Error()
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotADirectory:
		return ErrNotADirectory
	case KindNotAFile:
		return ErrNotAFile
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindPathConflict:
		return ErrPathConflict
	case KindNotEmpty:
		return ErrNotEmpty
	default:
		return ErrIOFailure
	}
}

// Error is the single error type returned by Filesystem operations.
type Error struct {
	Op   string // Operation name (e.g., "copy", "delete")
	Path string // Path the failure refers to
	Kind Kind   // Failure classification
	Err  error  // Underlying OS error, if any
}

// NewError creates an *Error for op on path.
func NewError(op, path string, kind Kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes the underlying OS error to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrIO and the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == ErrIO || target == e.Kind.sentinel()
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr.Kind, true
	}
	return KindIOFailure, false
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	}

	if kind, ok := KindOf(err); ok {
		switch kind {
		case KindNotADirectory:
			return ExitNotADirectory
		case KindNotAFile:
			return ExitNotAFile
		case KindAlreadyExists:
			return ExitAlreadyExists
		case KindPathConflict:
			return ExitPathConflict
		case KindNotEmpty:
			return ExitNotEmpty
		default:
			return ExitIOFailure
		}
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.Contains(errStr, "arg(s), received") ||
		strings.HasPrefix(errStr, "required flag") {
		return ExitUsageError
	}

	return ExitGeneralError
}
