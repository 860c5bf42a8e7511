package core

// errors.go defines the data-quality errors raised by the pipeline.
//
// Every data-quality failure is a *DataError carrying its Kind,
// the offending field and value, and a stack trace captured at the point of
// detection. Kinds map onto sentinel errors so callers can branch with
// errors.Is without string matching.

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
)

// ErrorKind classifies a DataError.
type ErrorKind string

const (
	KindMalformedInput   ErrorKind = "MALFORMED_INPUT"
	KindUnknownCategory  ErrorKind = "UNKNOWN_CATEGORY"
	KindUnknownCountry   ErrorKind = "UNKNOWN_COUNTRY"
	KindInsufficientData ErrorKind = "INSUFFICIENT_DATA"
	KindDivisionByZero   ErrorKind = "DIVISION_BY_ZERO"
)

// Sentinel errors matched by errors.Is against a *DataError of the same kind.
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownCountry   = errors.New("unknown country code")
	ErrInsufficientData = errors.New("insufficient data")
	ErrDivisionByZero   = errors.New("division by zero")
)

var kindSentinels = map[ErrorKind]error{
	KindMalformedInput:   ErrMalformedInput,
	KindUnknownCategory:  ErrUnknownCategory,
	KindUnknownCountry:   ErrUnknownCountry,
	KindInsufficientData: ErrInsufficientData,
	KindDivisionByZero:   ErrDivisionByZero,
}

// DataError describes a fatal problem with the dataset or a computation over it.
type DataError struct {
	Kind    ErrorKind
	Field   string // column or cohort the problem was found in
	Value   string // offending value, if any
	Line    int    // CSV line, 0 when not tied to a row
	Message string
	Err     error // underlying cause, if any
	Stack   []byte
}

func (e *DataError) Error() string {
	var b strings.Builder
	b.WriteString(kindSentinels[e.Kind].Error())
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
		if e.Value != "" {
			fmt.Fprintf(&b, "=%q", e.Value)
		}
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is reports whether target is the sentinel for this error's kind.
func (e *DataError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack captured when the error was created.
func (e *DataError) StackTrace() []byte {
	return e.Stack
}

func newDataError(kind ErrorKind, field, value, message string) *DataError {
	return &DataError{
		Kind:    kind,
		Field:   field,
		Value:   value,
		Message: message,
		Stack:   goerrors.Wrap(kindSentinels[kind], 2).Stack(),
	}
}

func malformed(line int, field, value, message string) *DataError {
	e := newDataError(KindMalformedInput, field, value, message)
	e.Line = line
	return e
}

func wrapMalformed(message string, err error) *DataError {
	e := newDataError(KindMalformedInput, "", "", message)
	e.Err = err
	return e
}

// AsDataError unwraps err to a *DataError if it holds one.
func AsDataError(err error) (*DataError, bool) {
	var de *DataError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
