package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors or only nil values were given, nil is returned. A single
// non-nil error is returned as it is. Returned multi error can be tested
// with Error.Is and FieldErrors, each contained error is inspected.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, e := range errs {
		points[i] = fmt.Sprintf("* %s", e)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(errs), strings.Join(points, "\n\t"))
}

// Unpack implements unpacker interface.
func (errs multiErr) Unpack() []error {
	return errs
}

// Code returns the code of the first error, to be consistent with the fail
// fast approach.
func (errs multiErr) Code() uint32 {
	return code(errs[0])
}

// unpacker is implemented by errors that club together several errors.
type unpacker interface {
	Unpack() []error
}
