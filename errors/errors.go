package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is returned when a caller lacks a required role or
	// signature.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a lock-box, asset or account is missing.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned for a message that fails validation.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned for a model that cannot be persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a key is already taken, for example a
	// lock-box id used before.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that must never be reached.
	ErrHuman = Register(7, "coding error")

	// ErrImmutable is returned on an attempt to change a fixed value.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty is returned when a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an object does not allow the operation in
	// its current state.
	ErrState = Register(10, "invalid state")

	// ErrType is returned for an unexpected type.
	ErrType = Register(11, "invalid type")

	// ErrAmount is returned for a malformed amount.
	ErrAmount = Register(12, "invalid amount")

	// ErrInput is returned for malformed input in general.
	ErrInput = Register(13, "invalid input")

	// ErrExpired is returned when a deadline has passed.
	ErrExpired = Register(14, "expired")

	// ErrOverflow is returned when arithmetic exceeds the value range.
	ErrOverflow = Register(15, "an operation cannot be completed due to value overflow")

	// ErrCurrency is returned for an unknown or mismatched ticker.
	ErrCurrency = Register(16, "invalid currency")

	// ErrInsufficientAmount is returned when a balance cannot cover a
	// transfer.
	ErrInsufficientAmount = Register(17, "insufficient amount")

	// ErrDatabase is returned when the store fails.
	ErrDatabase = Register(18, "database")

	// ErrSchema is returned for an unsupported metadata schema.
	ErrSchema = Register(19, "invalid schema")

	// ErrIteratorDone ends an iteration.
	ErrIteratorDone = Register(20, "iterator done")

	// ErrPanic wraps a recovered panic. Its details are never shown to
	// clients.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error kind. Codes are unique and a second
// registration of the same code panics, so call it from package level
// variable declarations only.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// usedCodes holds every registered kind by code. Code 1 stands for errors
// without a kind.
var usedCodes = map[uint32]*Error{
	1: {code: 1, desc: internalLog},
}

// Error is a root error kind. Errors created at runtime wrap one of them, so
// that callers can test the kind and clients receive a stable code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the numeric code of this error kind.
func (e Error) Code() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with a formatted description.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is reports whether err is of this kind. Wrapping layers are followed
// through Cause and a multi error matches when any member does. A nil kind
// matches only a nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}

	for {
		if err == e {
			return true
		}

		// A multi error is of a kind when any of its members is.
		if u, ok := err.(unpacker); ok {
			for _, er := range u.Unpack() {
				if e.Is(er) {
					return true
				}
			}
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap adds a description to err and returns nil for a nil err. A stack
// trace is attached at the innermost wrap. Errors of no registered kind are
// reported to clients as internal errors.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format implements fmt.Formatter. %+v prints the full stack trace.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n", e.msg)
		if f, ok := e.parent.(fmt.Formatter); ok {
			f.Format(s, verb)
			return
		}
		fmt.Fprintf(s, "%+v", e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover stops a panic and stores it in err as ErrPanic. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the Go type of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// causer is implemented by wrapping errors.
type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the outermost stack trace found in the chain of err.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// isNilErr also treats a typed nil pointer as nil, as in a nil *Error
// stored in an error interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
