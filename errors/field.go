package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name to err. The name follows Go naming, nested
// fields are joined with a dot and list elements use their index, for
// example Liquidity.2.Amount. A nil err gives nil.
func Field(name string, err error, format string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return &fieldError{name: name, desc: format, cause: err}
}

// AppendField adds the error of a single field to errs. Nothing is added
// when fieldErr is nil, so validations can be chained without checks.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	name  string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.cause)
	}
	return fmt.Sprintf("field %q: %s", e.name, e.cause)
}

func (e *fieldError) Cause() error { return e.cause }

func (e *fieldError) Field() string { return e.name }

// FieldErrors walks the error tree and collects every error that was
// created for the given field. The search does not descend into a matching
// field error.
func FieldErrors(err error, name string) []error {
	var found []error
	collectFields(err, name, &found)
	return found
}

func collectFields(err error, name string, found *[]error) {
	for !isNilErr(err) {
		if f, ok := err.(interface{ Field() string }); ok && f.Field() == name {
			*found = append(*found, err)
			return
		}
		// Unpack returns every child, so the cause is already covered.
		if u, ok := err.(unpacker); ok {
			for _, child := range u.Unpack() {
				collectFields(child, name, found)
			}
			return
		}
		c, ok := err.(causer)
		if !ok {
			return
		}
		err = c.Cause()
	}
}
