package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/orm"
)

// keeper groups the buckets of the extension together with the asset port.
// All bookkeeping of pools and liquidity accounts goes through it.
type keeper struct {
	port      AssetPort
	deposits  orm.ModelBucket
	withdraws orm.ModelBucket
	assets    orm.ModelBucket
	pools     orm.ModelBucket
	liquidity orm.ModelBucket
	limits    orm.ModelBucket
}

func newKeeper(port AssetPort) keeper {
	return keeper{
		port:      port,
		deposits:  NewDepositBucket(),
		withdraws: NewWithdrawBucket(),
		assets:    NewAssetBucket(),
		pools:     NewPoolBucket(),
		liquidity: NewLiquidityBucket(),
		limits:    NewSwapLimitBucket(),
	}
}

// resolveAsset returns the asset id used by a message. An empty id stands
// for the configured default asset.
func resolveAsset(conf *Configuration, assetID []byte) ([]byte, error) {
	if len(assetID) != 0 {
		return assetID, nil
	}
	if len(conf.DefaultAsset) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "asset id required, no default asset configured")
	}
	return conf.DefaultAsset, nil
}

// asset returns a registered asset or ErrNotFound.
func (k keeper) asset(db bridge.ReadOnlyKVStore, assetID []byte) (*Asset, error) {
	var a Asset
	if err := k.assets.One(db, assetID, &a); err != nil {
		return nil, errors.Wrapf(err, "asset %X", assetID)
	}
	return &a, nil
}

func (k keeper) pool(db bridge.ReadOnlyKVStore, assetID []byte) (*Pool, error) {
	var p Pool
	if err := k.pools.One(db, assetID, &p); err != nil {
		return nil, errors.Wrapf(err, "pool %X", assetID)
	}
	return &p, nil
}

// holdings returns the amount held in custody by the pool.
func (k keeper) holdings(db bridge.ReadOnlyKVStore, assetID []byte) (coin.Amount, error) {
	a, err := k.asset(db, assetID)
	if err != nil {
		return nil, err
	}
	return k.port.BalanceOf(db, a.Ticker, PoolAddress(assetID))
}

// free returns the pool holdings not pledged to open withdraws.
func (k keeper) free(db bridge.ReadOnlyKVStore, assetID []byte) (coin.Amount, error) {
	held, err := k.holdings(db, assetID)
	if err != nil {
		return nil, err
	}
	p, err := k.pool(db, assetID)
	if err != nil {
		return nil, err
	}
	free, err := held.Sub(p.Reserved)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrState, "pool %X holds %s, reserved %s", assetID, held, p.Reserved)
	}
	return free, nil
}

// requireFree fails with ErrInsufficientLiquidity unless the pool has at
// least amount of free liquidity.
func (k keeper) requireFree(db bridge.ReadOnlyKVStore, assetID []byte, amount coin.Amount) error {
	free, err := k.free(db, assetID)
	if err != nil {
		return err
	}
	if !free.IsGTE(amount) {
		return errors.Wrapf(ErrInsufficientLiquidity, "free %s, requested %s", free, amount)
	}
	return nil
}

func (k keeper) reserve(db bridge.KVStore, assetID []byte, amount coin.Amount) error {
	p, err := k.pool(db, assetID)
	if err != nil {
		return err
	}
	if p.Reserved, err = p.Reserved.Add(amount); err != nil {
		return err
	}
	return k.pools.Put(db, assetID, p)
}

func (k keeper) release(db bridge.KVStore, assetID []byte, amount coin.Amount) error {
	p, err := k.pool(db, assetID)
	if err != nil {
		return err
	}
	if p.Reserved, err = p.Reserved.Sub(amount); err != nil {
		return errors.Wrapf(errors.ErrState, "release %s of %s reserved", amount, p.Reserved)
	}
	return k.pools.Put(db, assetID, p)
}

// balance returns the nominal claim of a provider on the pool.
func (k keeper) balance(db bridge.ReadOnlyKVStore, assetID []byte, provider bridge.Address) (coin.Amount, error) {
	var acc LiquidityAccount
	switch err := k.liquidity.One(db, liquidityKey(assetID, provider), &acc); {
	case err == nil:
		return acc.Amount, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (k keeper) setBalance(db bridge.KVStore, assetID []byte, provider bridge.Address, amount coin.Amount) error {
	key := liquidityKey(assetID, provider)
	if amount.IsZero() {
		err := k.liquidity.Delete(db, key)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	acc := LiquidityAccount{
		Metadata: &bridge.Metadata{Schema: 1},
		AssetID:  assetID,
		Provider: provider,
		Amount:   amount,
	}
	return k.liquidity.Put(db, key, &acc)
}

// credit increases the liquidity account of a provider.
func (k keeper) credit(db bridge.KVStore, assetID []byte, provider bridge.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return nil
	}
	has, err := k.balance(db, assetID, provider)
	if err != nil {
		return err
	}
	total, err := has.Add(amount)
	if err != nil {
		return err
	}
	return k.setBalance(db, assetID, provider, total)
}

// debit decreases the liquidity account of a provider or fails with
// ErrInsufficientLiquidity.
func (k keeper) debit(db bridge.KVStore, assetID []byte, provider bridge.Address, amount coin.Amount) error {
	has, err := k.balance(db, assetID, provider)
	if err != nil {
		return err
	}
	left, err := has.Sub(amount)
	if err != nil {
		return errors.Wrapf(ErrInsufficientLiquidity, "provider %s holds %s, requested %s", provider, has, amount)
	}
	return k.setBalance(db, assetID, provider, left)
}

// swapLimit returns the governor state of an asset. An asset without a
// limit set has a disabled governor.
func (k keeper) swapLimit(db bridge.ReadOnlyKVStore, assetID []byte) (*SwapLimit, error) {
	var l SwapLimit
	switch err := k.limits.One(db, assetID, &l); {
	case err == nil:
		return &l, nil
	case errors.ErrNotFound.Is(err):
		return &SwapLimit{Metadata: &bridge.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}

// admit fails with ErrDailyLimitExceeded if moving amount would push the
// swapped volume above the daily cap of an enabled governor.
func (k keeper) admit(db bridge.ReadOnlyKVStore, assetID []byte, amount coin.Amount) error {
	l, err := k.swapLimit(db, assetID)
	if err != nil {
		return err
	}
	return l.admit(amount)
}

// count adds amount to the swapped volume. The volume is counted even when
// the governor is disabled.
func (k keeper) count(db bridge.KVStore, assetID []byte, amount coin.Amount) error {
	l, err := k.swapLimit(db, assetID)
	if err != nil {
		return err
	}
	if err := l.admit(amount); err != nil {
		return err
	}
	if l.SwappedToday, err = l.SwappedToday.Add(amount); err != nil {
		return err
	}
	return k.limits.Put(db, assetID, l)
}

func (l *SwapLimit) admit(amount coin.Amount) error {
	if !l.Enabled {
		return nil
	}
	after, err := l.SwappedToday.Add(amount)
	if err != nil {
		return err
	}
	if after.Cmp(l.DailyCap) > 0 {
		return errors.Wrapf(ErrDailyLimitExceeded, "swapped %s, cap %s, requested %s", l.SwappedToday, l.DailyCap, amount)
	}
	return nil
}

// Swappable returns what can still be moved today, never less than zero.
func (l *SwapLimit) Swappable() coin.Amount {
	return l.DailyCap.SaturatingSub(l.SwappedToday)
}

// assetIDs returns the ids of all registered assets.
func (k keeper) assetIDs(db bridge.ReadOnlyKVStore) ([][]byte, error) {
	it, err := k.assets.Iter(db)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var ids [][]byte
	for {
		var a Asset
		switch key, err := it.LoadNext(&a); {
		case err == nil:
			ids = append(ids, key)
		case errors.ErrIteratorDone.Is(err):
			return ids, nil
		default:
			return nil, err
		}
	}
}

// registerAsset stores a new asset with an empty pool.
func (k keeper) registerAsset(db bridge.KVStore, assetID []byte, ticker string) error {
	a := Asset{Metadata: &bridge.Metadata{Schema: 1}, Ticker: ticker}
	if err := k.assets.Put(db, assetID, &a); err != nil {
		return errors.Wrap(err, "store asset")
	}
	p := Pool{Metadata: &bridge.Metadata{Schema: 1}}
	if err := k.pools.Put(db, assetID, &p); err != nil {
		return errors.Wrap(err, "store pool")
	}
	return nil
}
