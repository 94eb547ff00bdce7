package jsondoc

import (
	"errors"
	"fmt"

	"github.com/cybergodev/jsondoc/internal"
)

// Core error definitions. Every structured error below unwraps to one of
// these, so callers can test the kind with errors.Is.
var (
	ErrInvalidJSON     = errors.New("invalid JSON")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrImmutable       = errors.New("document is immutable")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidRange    = errors.New("invalid range")
	ErrKeyNotFound     = errors.New("key not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrPointer         = errors.New("JSON pointer error")
	ErrInvalidHandle   = errors.New("invalid handle")
	ErrValueClosed     = errors.New("value is closed")
	ErrProcessorClosed = errors.New("processor is closed")
	ErrOperationFailed = errors.New("operation failed")

	// Number conversion errors
	ErrNumberOverflow = errors.New("number overflows target type")
	ErrInvalidNumber  = errors.New("invalid number")

	ErrWrite      = errors.New("serialization failed")
	ErrPackFormat = errors.New("invalid pack format")
	ErrNoParent   = errors.New("value has no parent")

	// Limit and security errors
	ErrSecurityViolation = errors.New("security violation detected")
	ErrSizeLimit         = errors.New("size limit exceeded")
	ErrDepthLimit        = errors.New("depth limit exceeded")
)

// ParseError reports malformed input: the reader's error code, a message and
// the byte offset where reading stopped.
type ParseError struct {
	Code    ReadCode
	Message string
	Pos     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s (code %d)", e.Pos, e.Message, e.Code)
}

func (e *ParseError) Unwrap() error { return ErrInvalidJSON }

func newParseError(se *internal.SyntaxError) *ParseError {
	if se == nil {
		return nil
	}
	return &ParseError{Code: se.Code, Message: se.Msg, Pos: se.Pos}
}

// TypeMismatchError is returned by typed accessors invoked on a value of a
// different type. Expected and Actual are type names ("object", "sint", ...).
type TypeMismatchError struct {
	Op       string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: type mismatch, expected %s but got %s", e.Op, e.Expected, e.Actual)
	}
	return fmt.Sprintf("type mismatch, expected %s but got %s", e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// IndexError reports an array index outside [0, Size).
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for array of size %d", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// RangeError reports a [Start, End) range that violates Start <= End <= Size.
type RangeError struct {
	Start int
	End   int
	Size  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d) for array of size %d", e.Start, e.End, e.Size)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// KeyError reports a missing or duplicate object key. Err is ErrKeyNotFound or
// ErrDuplicateKey.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Key)
}

func (e *KeyError) Unwrap() error { return e.Err }

// PointerError reports a JSON Pointer failure. Pos is the byte offset within
// the pointer text of the segment that failed.
type PointerError struct {
	Code    PointerCode
	Message string
	Pos     int
}

func (e *PointerError) Error() string {
	return fmt.Sprintf("pointer error at position %d: %s (code %d)", e.Pos, e.Message, e.Code)
}

func (e *PointerError) Unwrap() error { return ErrPointer }

func newPointerError(f *internal.PtrFault) *PointerError {
	return &PointerError{Code: f.Code, Message: f.Msg, Pos: f.Pos}
}

// HandleError is the handle table's rejection of a lookup or destroy.
type HandleError struct {
	Handle Handle
	Code   HandleCode
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("invalid handle %#x: %s (error %d)", uint32(e.Handle), e.Code, int(e.Code))
}

func (e *HandleError) Unwrap() error { return ErrInvalidHandle }

// WriteError reports a serialization failure.
type WriteError struct {
	Code    WriteCode
	Message string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: %s (code %d)", e.Message, e.Code)
}

func (e *WriteError) Unwrap() error { return ErrWrite }

// PackError reports a bad directive in a Pack format string.
type PackError struct {
	Pos     int
	Message string
}

func (e *PackError) Error() string {
	return fmt.Sprintf("pack format error at position %d: %s", e.Pos, e.Message)
}

func (e *PackError) Unwrap() error { return ErrPackFormat }

// OpError represents a processor level failure with essential context
type OpError struct {
	Op      string `json:"op"`      // Operation that failed
	Path    string `json:"path"`    // File or lookup path involved, if any
	Message string `json:"message"` // Human-readable error message
	Err     error  `json:"err"`     // Underlying error
}

func (e *OpError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("JSON %s failed at path '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("JSON %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain support
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling
func (e *OpError) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*OpError); ok {
		return e.Op == targetErr.Op && e.Err == targetErr.Err
	}
	return errors.Is(e.Err, target)
}

func newOperationError(operation, message string, err error) error {
	return &OpError{Op: operation, Message: message, Err: err}
}

func newPathError(operation, path, message string, err error) error {
	return &OpError{Op: operation, Path: path, Message: message, Err: err}
}

func newSizeLimitError(operation string, actual, limit int64) error {
	return &OpError{
		Op:      operation,
		Message: fmt.Sprintf("size %d exceeds limit %d", actual, limit),
		Err:     ErrSizeLimit,
	}
}

func newSecurityError(operation, message string) error {
	return &OpError{Op: operation, Message: message, Err: ErrSecurityViolation}
}

func typeMismatch(op, expected string, n internal.Node) error {
	return &TypeMismatchError{Op: op, Expected: expected, Actual: internal.NameOf(n)}
}

func immutableError(op string) error {
	return newOperationError(op, "value belongs to an immutable document", ErrImmutable)
}

// errorType names the sentinel behind err for per-type error counters.
func errorType(err error) string {
	for _, sentinel := range []error{
		ErrInvalidJSON, ErrTypeMismatch, ErrImmutable, ErrIndexOutOfRange,
		ErrInvalidRange, ErrKeyNotFound, ErrDuplicateKey, ErrPointer,
		ErrInvalidHandle, ErrValueClosed, ErrProcessorClosed, ErrWrite,
		ErrPackFormat, ErrSecurityViolation, ErrSizeLimit, ErrDepthLimit,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "unknown"
}
