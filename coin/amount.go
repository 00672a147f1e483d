/*
Package coin implements asset amounts and ticker tagged coins.

Bridged assets commonly use 18 decimal places, so amounts are unsigned 256
bit integers in the smallest denomination. Arithmetic never wraps: overflow
and underflow are reported as errors.
*/
package coin

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iov-one/bridge/errors"
)

// Amount is an unsigned 256 bit integer serialized as a minimal big endian
// byte string. A zero amount is an empty (nil) byte string, so equal values
// always have equal serializations.
type Amount []byte

// NewAmount returns an amount of given value.
func NewAmount(v uint64) Amount {
	return fromUint(uint256.NewInt(v))
}

// ParseAmount decodes a base 10 representation of an amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	return AmountFromBig(b)
}

// AmountFromBig converts a big integer into an amount. Negative values and
// values that do not fit 256 bits are rejected.
func AmountFromBig(b *big.Int) (Amount, error) {
	if b.Sign() < 0 {
		return nil, errors.Wrap(errors.ErrAmount, "negative value")
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.Wrap(errors.ErrOverflow, "more than 256 bits")
	}
	return fromUint(u), nil
}

// MustParseAmount is like ParseAmount but panics on error. Use it only with
// constant input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func fromUint(u *uint256.Int) Amount {
	if u.IsZero() {
		return nil
	}
	return u.Bytes()
}

func (a Amount) uint() *uint256.Int {
	return new(uint256.Int).SetBytes(a)
}

// Validate returns an error if the serialized form is not a minimal
// encoding of a 256 bit value.
func (a Amount) Validate() error {
	if len(a) > 32 {
		return errors.Wrap(errors.ErrOverflow, "more than 256 bits")
	}
	if len(a) > 0 && a[0] == 0 {
		return errors.Wrap(errors.ErrAmount, "leading zero")
	}
	return nil
}

// IsZero returns true if the amount represents no value.
func (a Amount) IsZero() bool {
	return a.uint().IsZero()
}

// Cmp compares two amounts and returns -1, 0 or 1 as a is lower, equal or
// greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.uint().Cmp(b.uint())
}

// Equals returns true if both amounts represent the same value.
func (a Amount) Equals(b Amount) bool {
	return a.Cmp(b) == 0
}

// IsGTE returns true if a is greater than or equal to b.
func (a Amount) IsGTE(b Amount) bool {
	return a.Cmp(b) >= 0
}

// Add returns the sum of both amounts or ErrOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a.uint(), b.uint())
	if overflow {
		return nil, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return fromUint(sum), nil
}

// Sub returns a - b. It fails with ErrInsufficientAmount if b is greater
// than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a.uint(), b.uint())
	if underflow {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s - %s", a, b)
	}
	return fromUint(diff), nil
}

// SaturatingSub returns a - b, or zero if b is greater than a.
func (a Amount) SaturatingSub(b Amount) Amount {
	if b.IsGTE(a) {
		return nil
	}
	diff, _ := a.Sub(b)
	return diff
}

// Sum adds all given amounts.
func Sum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// Big returns the value as a big integer.
func (a Amount) Big() *big.Int {
	return a.uint().ToBig()
}

// String returns the base 10 representation.
func (a Amount) String() string {
	return a.Big().String()
}

// MarshalJSON encodes the amount as a base 10 string, because JSON numbers
// cannot hold 256 bit values.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a base 10 string and a number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrAmount, "must be a string or a number")
		}
		s = n.String()
	}
	val, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = val
	return nil
}
