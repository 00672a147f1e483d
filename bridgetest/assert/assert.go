/*
Package assert provides the small set of assertions used across the ledger
tests.
*/
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil. Errors are printed with %+v to
// show their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test unless want and got are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %T %v\ngot  %T %v", want, want, got, got)
	}
}

// Amount fails the test unless the amount equals the given integer value.
// Amounts are compared by value, so that an empty and a nil zero amount are
// the same.
func Amount(t Tester, want uint64, got coin.Amount) {
	t.Helper()
	if !coin.NewAmount(want).Equals(got) {
		t.Fatalf("want amount %d, got %s", want, got)
	}
}

// Panics fails the test unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("want a panic")
		}
	}()
	fn()
}

// FieldError fails the test unless err holds exactly one error for the
// field and it is of the wanted kind. A nil kind asserts that the field has
// no error.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	if want == nil {
		if len(errs) > 0 {
			t.Fatalf("want no %s error, got %q", field, errs)
		}
		return
	}
	if len(errs) != 1 {
		t.Fatalf("want one %s error, got %d: %q", field, len(errs), errs)
	}
	if !want.Is(errs[0]) {
		t.Fatalf("want %s error %q, got %q", field, want, errs[0])
	}
}

// IsErr fails the test unless got is of the kind of want. A nil kind
// matches only a nil error.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
