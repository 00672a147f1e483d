package coin

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/bridge/errors"
)

// IsTicker is the RegExp to ensure valid currency codes.
var IsTicker = regexp.MustCompile(`^[A-Z0-9]{2,10}$`).MatchString

// NewCoin creates a new coin object.
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: NewAmount(amount)}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// Clone provides an independent copy of a coin pointer.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Amount: append(Amount(nil), c.Amount...),
	}
}

// Validate ensures that the coin has a valid currency code and amount.
func (c *Coin) Validate() error {
	if c == nil {
		return errors.Wrap(errors.ErrEmpty, "coin")
	}
	var err error
	if !IsTicker(c.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker))
	}
	return errors.Append(err, c.Amount.Validate())
}

// IsZero returns true if the coin represents no value.
func (c *Coin) IsZero() bool {
	return c == nil || c.Amount.IsZero()
}

// Equals returns true if both coins are of the same currency and value.
func (c *Coin) Equals(o *Coin) bool {
	if c.IsZero() && o.IsZero() {
		return true
	}
	return c != nil && o != nil && c.Ticker == o.Ticker && c.Amount.Equals(o.Amount)
}

// Add combines two coins of the same currency.
func (c Coin) Add(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum, err := c.Amount.Add(o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

// Subtract given coin. It fails if the result would be negative.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	diff, err := c.Amount.Sub(o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Ticker: c.Ticker, Amount: diff}, nil
}

// Human returns a human readable representation "<amount> <ticker>" that
// can be parsed back with ParseHumanFormat.
func (c Coin) Human() string {
	return fmt.Sprintf("%s %s", c.Amount, c.Ticker)
}

var humanCoinFormatRx = regexp.MustCompile(`^(\d+)\s*([A-Z0-9]{2,10})$`)

// ParseHumanFormat parses a human readable coin representation. Accepted
// format is a string "<amount> <ticker>", where amount is an integer in the
// smallest denomination.
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := ParseAmount(m[1])
	if err != nil {
		return Coin{}, err
	}
	return Coin{Ticker: m[2], Amount: amount}, nil
}
