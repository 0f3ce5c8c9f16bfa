package httpfn

import (
	"context"
	"errors"
	"fmt"

	sferrors "github.com/sjwiesman/statefun-go/internal/errors"
	"github.com/sjwiesman/statefun-go/pkg/flink/statefun"
)

// ErrUnsupportedFunctionType matches any UnsupportedFunctionTypeError via errors.Is.
var ErrUnsupportedFunctionType = errors.New("unsupported function type")

// UnsupportedFunctionTypeError is returned when a provider is asked for a
// function type it has no endpoint for. It is a configuration mismatch
// and retrying will not help.
type UnsupportedFunctionTypeError struct {
	FunctionType statefun.FunctionType
}

func (e *UnsupportedFunctionTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s", e.FunctionType)
}

func (e *UnsupportedFunctionTypeError) Is(target error) bool {
	return target == ErrUnsupportedFunctionType
}

// InvocationError reports a failed call to a remote function.
type InvocationError struct {
	FunctionType statefun.FunctionType
	Endpoint     string
	Err          error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to invoke %s at %s: %v", e.FunctionType, e.Endpoint, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Timeout reports whether one of the configured timeout phases tripped.
// The whole chain is checked since net/http may wrap a timed out write
// in an error that does not report it.
func (e *InvocationError) Timeout() bool {
	for err := e.Err; err != nil; err = errors.Unwrap(err) {
		if timeout, ok := err.(interface{ Timeout() bool }); ok && timeout.Timeout() {
			return true
		}
	}

	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Code returns the status the endpoint replied with, or 0 if the
// call failed before a response was received.
func (e *InvocationError) Code() int {
	if !sferrors.HasCode(e.Err) {
		return 0
	}
	return sferrors.ToCode(e.Err)
}
