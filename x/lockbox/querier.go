package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
)

// Querier gives read access to the lock-box state. None of its methods
// modify the store.
type Querier struct {
	k      keeper
	access Access
}

// NewQuerier returns a querier reading pool holdings through given port.
func NewQuerier(port AssetPort) Querier {
	return Querier{k: newKeeper(port), access: NewAccess(nil)}
}

// CheckDeposit returns the deposit with given id or ErrNotFound.
func (q Querier) CheckDeposit(db bridge.ReadOnlyKVStore, id []byte) (*LockBox, error) {
	return loadBox(db, q.k.deposits, id)
}

// CheckWithdraw returns the withdraw with given id or ErrNotFound.
func (q Querier) CheckWithdraw(db bridge.ReadOnlyKVStore, id []byte) (*LockBox, error) {
	return loadBox(db, q.k.withdraws, id)
}

// CheckSecretKeyWithdraw returns the secret revealed by closing a withdraw.
// It fails with ErrNotRevealed unless the withdraw is closed.
func (q Querier) CheckSecretKeyWithdraw(db bridge.ReadOnlyKVStore, id []byte) (bridge.HexBytes, error) {
	box, err := q.CheckWithdraw(db, id)
	if err != nil {
		return nil, err
	}
	return revealed(box)
}

// CheckSecretKeyDeposit returns the secret used to close a deposit.
func (q Querier) CheckSecretKeyDeposit(db bridge.ReadOnlyKVStore, id []byte) (bridge.HexBytes, error) {
	box, err := q.CheckDeposit(db, id)
	if err != nil {
		return nil, err
	}
	return revealed(box)
}

func revealed(box *LockBox) (bridge.HexBytes, error) {
	if box.State != Closed {
		return nil, errors.Wrapf(ErrNotRevealed, "lock-box is %s", box.State)
	}
	return box.Secret, nil
}

// DepositsByLockHash returns the ids of all deposits locked with given hash.
func (q Querier) DepositsByLockHash(db bridge.ReadOnlyKVStore, lockHash []byte) ([][]byte, error) {
	var boxes []*LockBox
	return q.k.deposits.ByIndex(db, "lock_hash", lockHash, &boxes)
}

// WithdrawsByLockHash returns the ids of all withdraws locked with given
// hash.
func (q Querier) WithdrawsByLockHash(db bridge.ReadOnlyKVStore, lockHash []byte) ([][]byte, error) {
	var boxes []*LockBox
	return q.k.withdraws.ByIndex(db, "lock_hash", lockHash, &boxes)
}

// DepositsBySender returns the ids of all deposits of a depositor.
func (q Querier) DepositsBySender(db bridge.ReadOnlyKVStore, sender bridge.Address) ([][]byte, error) {
	var boxes []*LockBox
	return q.k.deposits.ByIndex(db, "sender", sender, &boxes)
}

// WithdrawsByReceiver returns the ids of all withdraws paying to given
// receiver.
func (q Querier) WithdrawsByReceiver(db bridge.ReadOnlyKVStore, receiver bridge.Address) ([][]byte, error) {
	var boxes []*LockBox
	return q.k.withdraws.ByIndex(db, "receiver", receiver, &boxes)
}

// Asset returns a registered asset.
func (q Querier) Asset(db bridge.ReadOnlyKVStore, assetID []byte) (*Asset, error) {
	return q.k.asset(db, assetID)
}

// BalanceOfLiquidity returns the nominal claim of a provider.
func (q Querier) BalanceOfLiquidity(db bridge.ReadOnlyKVStore, assetID []byte, provider bridge.Address) (coin.Amount, error) {
	if _, err := q.k.asset(db, assetID); err != nil {
		return nil, err
	}
	return q.k.balance(db, assetID, provider)
}

// Holdings returns the amount held in custody by the pool of an asset.
func (q Querier) Holdings(db bridge.ReadOnlyKVStore, assetID []byte) (coin.Amount, error) {
	return q.k.holdings(db, assetID)
}

// FreeLiquidity returns the pool holdings not pledged to open withdraws.
func (q Querier) FreeLiquidity(db bridge.ReadOnlyKVStore, assetID []byte) (coin.Amount, error) {
	return q.k.free(db, assetID)
}

// Reserved returns the sum of the amounts of open withdraws.
func (q Querier) Reserved(db bridge.ReadOnlyKVStore, assetID []byte) (coin.Amount, error) {
	p, err := q.k.pool(db, assetID)
	if err != nil {
		return nil, err
	}
	return p.Reserved, nil
}

// IsManager returns true if the address belongs to the manager set.
func (q Querier) IsManager(db bridge.ReadOnlyKVStore, addr bridge.Address) (bool, error) {
	return q.access.IsManager(db, addr)
}

// IsOwner returns true if the address is the owner.
func (q Querier) IsOwner(db bridge.ReadOnlyKVStore, addr bridge.Address) (bool, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return false, err
	}
	return conf.Owner.Equals(addr), nil
}

// GetActive returns the state of the circuit breaker.
func (q Querier) GetActive(db bridge.ReadOnlyKVStore) (bool, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return false, err
	}
	return conf.Active, nil
}

// Configuration returns the current configuration.
func (q Querier) Configuration(db bridge.ReadOnlyKVStore) (*Configuration, error) {
	return LoadConfiguration(db)
}

// SwapLimit returns the governor state of an asset.
func (q Querier) SwapLimit(db bridge.ReadOnlyKVStore, assetID []byte) (*SwapLimit, error) {
	if _, err := q.k.asset(db, assetID); err != nil {
		return nil, err
	}
	return q.k.swapLimit(db, assetID)
}

// GetTodaySwappedAmount returns the volume moved since the last reset.
func (q Querier) GetTodaySwappedAmount(db bridge.ReadOnlyKVStore, assetID []byte) (coin.Amount, error) {
	l, err := q.SwapLimit(db, assetID)
	if err != nil {
		return nil, err
	}
	return l.SwappedToday, nil
}

// GetTodaySwappableAmount returns what can still be moved today.
func (q Querier) GetTodaySwappableAmount(db bridge.ReadOnlyKVStore, assetID []byte) (coin.Amount, error) {
	l, err := q.SwapLimit(db, assetID)
	if err != nil {
		return nil, err
	}
	return l.Swappable(), nil
}
