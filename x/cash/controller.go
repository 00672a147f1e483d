package cash

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that move funds.
type Controller interface {
	CoinMover
	Balancer
	// IssueCoins adds given amount to the destination account. Fails if
	// it overflows the wallet.
	IssueCoins(db bridge.KVStore, dest bridge.Address, amount coin.Coin) error
}

// CoinMover moves funds between accounts.
type CoinMover interface {
	// MoveCoins moves the given amount from src to dest. If src does not
	// hold enough coins, it fails with ErrInsufficientAmount and nothing
	// is changed.
	MoveCoins(db bridge.KVStore, src, dest bridge.Address, amount coin.Coin) error
}

// Balancer returns the amount of a currency held by an account.
type Balancer interface {
	Balance(db bridge.ReadOnlyKVStore, addr bridge.Address, ticker string) (coin.Amount, error)
}

// BaseController is a simple implementation of the controller, storing
// wallets in a bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of given currency held by an address. A
// missing account holds nothing.
func (c BaseController) Balance(db bridge.ReadOnlyKVStore, addr bridge.Address, ticker string) (coin.Amount, error) {
	w, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return nil, err
	}
	return coin.Coins(w.Coins).Balance(ticker), nil
}

// Wallet returns all coins held by an address.
func (c BaseController) Wallet(db bridge.ReadOnlyKVStore, addr bridge.Address) (coin.Coins, error) {
	w, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
func (c BaseController) MoveCoins(db bridge.KVStore, src, dest bridge.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}

	sender, err := c.bucket.GetOrEmpty(db, src)
	if err != nil {
		return err
	}
	left, err := coin.Coins(sender.Coins).Subtract(amount)
	if err != nil {
		return errors.Wrapf(err, "account %s", src)
	}
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return err
	}
	total, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return err
	}

	sender.Coins = left
	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}
	recipient.Coins = total
	return c.bucket.Save(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to the destination
// address.
func (c BaseController) IssueCoins(db bridge.KVStore, dest bridge.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	recipient, err := c.bucket.GetOrEmpty(db, dest)
	if err != nil {
		return err
	}
	total, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return err
	}
	recipient.Coins = total
	return c.bucket.Save(db, dest, recipient)
}
