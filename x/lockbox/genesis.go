package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
)

const optKey = "lockbox"

// Genesis is the initial state of the extension, read from the "lockbox"
// genesis key. The configuration itself is read from "conf"."lockbox".
type Genesis struct {
	Managers   []bridge.Address   `json:"managers"`
	Assets     []GenesisAsset     `json:"assets"`
	Liquidity  []GenesisLiquidity `json:"liquidity"`
	SwapLimits []GenesisSwapLimit `json:"swap_limits"`
}

type GenesisAsset struct {
	AssetID bridge.HexBytes `json:"asset_id"`
	Ticker  string          `json:"ticker"`
}

// GenesisLiquidity seeds a pool. The amount is moved from the payer
// account, which must be funded by the cash genesis.
type GenesisLiquidity struct {
	AssetID  bridge.HexBytes `json:"asset_id"`
	Payer    bridge.Address  `json:"payer"`
	Provider bridge.Address  `json:"provider"`
	Amount   coin.Amount     `json:"amount"`
}

type GenesisSwapLimit struct {
	AssetID  bridge.HexBytes `json:"asset_id"`
	Enabled  bool            `json:"enabled"`
	DailyCap coin.Amount     `json:"daily_cap"`
}

// Initializer loads the lock-box state from genesis. It must run after the
// initializer of the asset ledger behind the port.
type Initializer struct {
	Port AssetPort
}

var _ bridge.Initializer = Initializer{}

func (i Initializer) FromGenesis(opts bridge.Options, db bridge.KVStore) error {
	if err := InitConfig(db, opts); err != nil {
		return err
	}
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	k := newKeeper(i.Port)
	access := NewAccess(nil)

	for n, addr := range gen.Managers {
		m := Manager{Metadata: &bridge.Metadata{Schema: 1}, Address: addr}
		if err := access.managers.Put(db, addr, &m); err != nil {
			return errors.Wrapf(err, "manager %d", n)
		}
	}
	for n, a := range gen.Assets {
		if err := validateID("asset id", a.AssetID); err != nil {
			return errors.Wrapf(err, "asset %d", n)
		}
		if err := k.registerAsset(db, a.AssetID, a.Ticker); err != nil {
			return errors.Wrapf(err, "asset %d", n)
		}
	}
	for n, l := range gen.Liquidity {
		asset, err := k.asset(db, l.AssetID)
		if err != nil {
			return errors.Wrapf(err, "liquidity %d", n)
		}
		if err := validatePositive(l.Amount); err != nil {
			return errors.Wrapf(err, "liquidity %d", n)
		}
		if err := k.port.TransferIn(db, asset.Ticker, l.Payer, PoolAddress(l.AssetID), l.Amount); err != nil {
			return errors.Wrapf(err, "liquidity %d", n)
		}
		if err := k.credit(db, l.AssetID, l.Provider, l.Amount); err != nil {
			return errors.Wrapf(err, "liquidity %d", n)
		}
	}
	for n, s := range gen.SwapLimits {
		if _, err := k.asset(db, s.AssetID); err != nil {
			return errors.Wrapf(err, "swap limit %d", n)
		}
		limit := SwapLimit{
			Metadata: &bridge.Metadata{Schema: 1},
			Enabled:  s.Enabled,
			DailyCap: s.DailyCap,
		}
		if err := k.limits.Put(db, s.AssetID, &limit); err != nil {
			return errors.Wrapf(err, "swap limit %d", n)
		}
	}
	return nil
}
