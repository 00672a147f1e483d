package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/x/cash"
)

// AssetPort moves the fungible asset behind a pool. Every call is all or
// nothing.
type AssetPort interface {
	// TransferIn pulls amount from an account into a custody account.
	TransferIn(db bridge.KVStore, ticker string, from, custody bridge.Address, amount coin.Amount) error
	// TransferOut pays amount from a custody account to an account.
	TransferOut(db bridge.KVStore, ticker string, custody, to bridge.Address, amount coin.Amount) error
	// BalanceOf returns the amount held by an account.
	BalanceOf(db bridge.ReadOnlyKVStore, ticker string, account bridge.Address) (coin.Amount, error)
}

// CashPort implements AssetPort on top of the cash extension.
type CashPort struct {
	ctrl cash.Controller
}

var _ AssetPort = CashPort{}

// NewCashPort returns an asset port moving cash coins.
func NewCashPort(ctrl cash.Controller) CashPort {
	return CashPort{ctrl: ctrl}
}

func (p CashPort) TransferIn(db bridge.KVStore, ticker string, from, custody bridge.Address, amount coin.Amount) error {
	return p.move(db, ticker, from, custody, amount)
}

func (p CashPort) TransferOut(db bridge.KVStore, ticker string, custody, to bridge.Address, amount coin.Amount) error {
	return p.move(db, ticker, custody, to, amount)
}

func (p CashPort) move(db bridge.KVStore, ticker string, src, dest bridge.Address, amount coin.Amount) error {
	err := p.ctrl.MoveCoins(db, src, dest, coin.Coin{Ticker: ticker, Amount: amount})
	if err != nil {
		return errors.Append(errors.Wrapf(ErrTransferFailed, "%s %s from %s to %s", amount, ticker, src, dest), err)
	}
	return nil
}

func (p CashPort) BalanceOf(db bridge.ReadOnlyKVStore, ticker string, account bridge.Address) (coin.Amount, error) {
	return p.ctrl.Balance(db, account, ticker)
}
