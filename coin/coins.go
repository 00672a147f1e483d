package coin

import (
	"sort"

	"github.com/iov-one/bridge/errors"
)

// Coins represents a set of coins of distinct currencies, sorted by ticker.
// Zero value coins are never kept.
type Coins []*Coin

// Clone returns a copy that can be safely modified.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Balance returns the amount held in given currency.
func (cs Coins) Balance(ticker string) Amount {
	if c, _ := cs.find(ticker); c != nil {
		return c.Amount
	}
	return nil
}

// Add returns a new set increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := cs.Clone()
	has, i := res.find(c.Ticker)
	if has == nil {
		res = append(res, nil)
		copy(res[i+1:], res[i:])
		res[i] = c.Clone()
		return res, nil
	}
	sum, err := has.Add(c)
	if err != nil {
		return nil, err
	}
	res[i] = &sum
	return res, nil
}

// Subtract returns a new set decreased by c. It fails with
// ErrInsufficientAmount if the set holds less than c.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := cs.Clone()
	has, i := res.find(c.Ticker)
	if has == nil {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s held", c.Ticker)
	}
	diff, err := has.Subtract(c)
	if err != nil {
		return nil, err
	}
	if diff.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &diff
	return res, nil
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	return cs.Balance(c.Ticker).IsGTE(c.Amount)
}

// IsEmpty returns if nothing is in the set.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both sets hold the same values.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Validate requires all coins to be valid, non zero, sorted and of distinct
// currencies.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "zero %s coin", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrState, "coins not normalized")
		}
	}
	return nil
}

// find returns a coin and index that have this currency code. If there was
// no match, then result is nil, and index is where it should be inserted.
func (cs Coins) find(ticker string) (*Coin, int) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	if i < len(cs) && cs[i].Ticker == ticker {
		return cs[i], i
	}
	return nil, i
}
