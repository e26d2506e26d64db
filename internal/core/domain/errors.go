package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error code categories. A code has the form MZ-<CATEGORY>-<NUMBER>.
const (
	CategoryArgs   = "ARGS"
	CategoryConfig = "CONF"
)

// DomainError is an error carrying a stable code. Two DomainErrors
// match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
	Details string
	Cause   error
}

// NewDomainError returns a sentinel error for code.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

func (e *DomainError) Unwrap() error { return e.Cause }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Category returns the middle segment of the code, e.g. ARGS.
func (e *DomainError) Category() string {
	parts := strings.Split(e.Code, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

// WithDetails returns a copy of e with details set. e is not modified.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of e wrapping cause. e is not modified.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// IsArgumentError reports whether err was caused by bad command-line
// arguments.
func IsArgumentError(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Category() == CategoryArgs
}

// Argument errors.
var (
	ErrUsage          = NewDomainError("MZ-ARGS-4000", "wrong number of arguments")
	ErrInvalidThreads = NewDomainError("MZ-ARGS-4001", "numThreads must be a positive integer")
	ErrInvalidInserts = NewDomainError("MZ-ARGS-4002", "insertsPerThread must be a positive integer")
	ErrTooManyThreads = NewDomainError("MZ-ARGS-4003", "numThreads exceeds the plot channel limit")
)

// ErrInvalidConfig reports a configuration that failed validation.
var ErrInvalidConfig = NewDomainError("MZ-CONF-4000", "invalid configuration")
