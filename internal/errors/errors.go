// Package errors carries an HTTP status code alongside an error as it is
// wrapped with additional context. Remote function endpoints use it to pick
// the response status, and the invocation handler uses it to record the
// status a remote endpoint replied with.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// stateFunError represents one or more details about an error. They are usually
// nested in the order that additional context was wrapped around the original
// error.
type stateFunError struct {
	code    int
	cause   error
	message string
}

// New creates an error that reports the given status code.
func New(code int, format string, args ...interface{}) error {
	return &stateFunError{
		code:  code,
		cause: fmt.Errorf(format, args...),
	}
}

func BadRequest(format string, args ...interface{}) error {
	return New(http.StatusBadRequest, format, args...)
}

// Wrap adds context to e while keeping the status code of the
// innermost coded error, defaulting to 500.
func Wrap(e error, format string, args ...interface{}) error {
	return &stateFunError{
		code:    ToCode(e),
		cause:   e,
		message: fmt.Sprintf(format, args...),
	}
}

// ToCode returns the status code carried by e, or 500 if
// e was never given one.
func ToCode(e error) int {
	var coded *stateFunError
	if stderrors.As(e, &coded) {
		return coded.code
	}

	return http.StatusInternalServerError
}

// HasCode reports whether e, or anything it wraps, carries a status code.
func HasCode(e error) bool {
	var coded *stateFunError
	return stderrors.As(e, &coded)
}

func (e *stateFunError) Unwrap() error {
	return e.cause
}

// Error outputs a stateFunError as a string. The top-level error message is
// displayed first, followed by each error's context and error message in
// sequence. The original error is output last.
func (e *stateFunError) Error() string {
	var builder strings.Builder

	e.printRecursive(&builder)

	return builder.String()
}

func (e *stateFunError) printRecursive(builder *strings.Builder) {
	wraps := e.cause != nil

	if e.message != "" {
		builder.WriteString(e.message)
		if wraps {
			builder.WriteString("\n\tcaused by:\n")
		}
	}

	if wraps {
		if be, ok := e.cause.(*stateFunError); ok {
			be.printRecursive(builder)
		} else {
			builder.WriteString(e.cause.Error())
		}
	}
}

// Format implements the fmt.Formatter interface
func (e *stateFunError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}
