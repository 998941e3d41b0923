package model

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes the failure modes of the packaging, staging, and
// document layers. Kinds are coarse by design: callers branch on the kind
// (or map it to an exit code), while the wrapped cause carries the detail.
type ErrorKind string

const (
	// KindInvalidArgument indicates a null/empty path or an otherwise
	// malformed caller-supplied value.
	KindInvalidArgument ErrorKind = "invalid-argument"

	// KindNotFound indicates the source file does not exist.
	KindNotFound ErrorKind = "not-found"

	// KindPackageOpen indicates the file bytes are not a valid OPC container.
	KindPackageOpen ErrorKind = "package-open"

	// KindPartNotFound indicates a part or relationship lookup failed.
	// It is mostly used internally for get-or-create decisions rather
	// than surfaced to the end user.
	KindPartNotFound ErrorKind = "part-not-found"

	// KindIO indicates a file copy, delete, or attribute operation failed.
	KindIO ErrorKind = "io"

	// KindCancelled indicates the user declined an interactive prompt.
	KindCancelled ErrorKind = "cancelled"
)

// OfficeError is the error type returned by the opc, staging, and office
// packages. It carries an ErrorKind for programmatic handling, a
// human-readable message, and an optional wrapped cause.
type OfficeError struct {
	// Kind is the failure category.
	Kind ErrorKind

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// message, optionally including the underlying error.
func (e *OfficeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *OfficeError) Unwrap() error {
	return e.Err
}

// NewError creates a new OfficeError with the given kind and message.
func NewError(kind ErrorKind, message string) *OfficeError {
	return &OfficeError{Kind: kind, Message: message}
}

// WrapError creates a new OfficeError that wraps an existing error.
func WrapError(kind ErrorKind, message string, err error) *OfficeError {
	return &OfficeError{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err is (or wraps) an OfficeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OfficeError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidArgument indicates a missing or malformed argument.
	ExitInvalidArgument ExitCode = 2

	// ExitNotFound indicates the target document does not exist.
	ExitNotFound ExitCode = 3

	// ExitPackageOpen indicates the document is not a valid OOXML package.
	ExitPackageOpen ExitCode = 4

	// ExitPartNotFound indicates the requested custom UI part is absent.
	ExitPartNotFound ExitCode = 5

	// ExitIO indicates a file-system operation failed.
	ExitIO ExitCode = 6

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 7
)

// ExitCodeFor maps an error to the exit code the CLI should terminate with.
// OfficeError kinds get dedicated codes; anything else is a general error.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	var oe *OfficeError
	if !errors.As(err, &oe) {
		return ExitGeneralError
	}

	switch oe.Kind {
	case KindInvalidArgument:
		return ExitInvalidArgument
	case KindNotFound:
		return ExitNotFound
	case KindPackageOpen:
		return ExitPackageOpen
	case KindPartNotFound:
		return ExitPartNotFound
	case KindIO:
		return ExitIO
	case KindCancelled:
		return ExitUserCancelled
	default:
		return ExitGeneralError
	}
}
