package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is returned for a nil error.
	SuccessCode = 0

	// All unclassified errors that do not provide a code are clubbed under
	// an internal error code and a generic message instead of detailed
	// error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the error information that can be exposed to a client.
// Returned code and log message should be used as a response.
//
// Any error that does not provide code information is categorized as an
// internal error with code 1. When not running in a debug mode, the message of
// an internal error is replaced with a generic "internal error".
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	// Only non-internal errors information can be exposed. Any error that
	// does not explicitly expose its state by providing a code must be
	// silenced.
	if !debug && ErrPanic.Is(err) {
		return ErrPanic.code, internalLog
	}
	if c := code(err); c != internalCode {
		if debug {
			// Try to trigger full information formatting. This
			// might produce a stacktrace.
			return c, fmt.Sprintf("%+v", err)
		}
		return c, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

type coder interface {
	Code() uint32
}

// code test if given error contains a code and returns the value of it if
// available. This function is testing for the causer interface as well and
// unwraps the error.
func code(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Redact replaces all errors that are not declared with Register with a
// generic internal error instance. Panic information is always hidden.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
