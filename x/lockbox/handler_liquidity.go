package lockbox

import (
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/x"
)

// IncreaseLiquidityHandler adds funds of a payer to a pool and credits them
// to a provider.
type IncreaseLiquidityHandler struct {
	auth x.Authenticator
	k    keeper
}

var _ bridge.Handler = IncreaseLiquidityHandler{}

func (h IncreaseLiquidityHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

func (h IncreaseLiquidityHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, asset, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.k.port.TransferIn(db, asset.Ticker, msg.Payer, PoolAddress(msg.AssetID), msg.Amount); err != nil {
		return nil, err
	}
	if err := h.k.credit(db, msg.AssetID, msg.Provider, msg.Amount); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Debug("liquidity increased", "provider", msg.Provider, "amount", msg.Amount, "ticker", asset.Ticker)
	return &bridge.DeliverResult{}, nil
}

func (h IncreaseLiquidityHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*IncreaseLiquidityMsg, *Asset, error) {
	var msg IncreaseLiquidityMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := requireActive(conf); err != nil {
		return nil, nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Payer, "payer"); err != nil {
		return nil, nil, err
	}
	if msg.AssetID, err = resolveAsset(conf, msg.AssetID); err != nil {
		return nil, nil, err
	}
	asset, err := h.k.asset(db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, asset, nil
}

// DecreaseLiquidityHandler pays a provider out of a pool.
type DecreaseLiquidityHandler struct {
	auth x.Authenticator
	k    keeper
}

var _ bridge.Handler = DecreaseLiquidityHandler{}

func (h DecreaseLiquidityHandler) Check(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bridge.CheckResult{}, nil
}

// Deliver pays the provider. Both the nominal claim of the provider and
// the free liquidity of the pool must cover the amount, so that funds
// pledged to open withdraws are never paid out.
func (h DecreaseLiquidityHandler) Deliver(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*bridge.DeliverResult, error) {
	msg, asset, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.k.port.TransferOut(db, asset.Ticker, PoolAddress(msg.AssetID), msg.Provider, msg.Amount); err != nil {
		return nil, err
	}
	if err := h.k.debit(db, msg.AssetID, msg.Provider, msg.Amount); err != nil {
		return nil, err
	}
	bridge.GetLogger(ctx).Debug("liquidity decreased", "provider", msg.Provider, "amount", msg.Amount, "ticker", asset.Ticker)
	return &bridge.DeliverResult{}, nil
}

func (h DecreaseLiquidityHandler) validate(ctx bridge.Context, db bridge.KVStore, tx bridge.Tx) (*DecreaseLiquidityMsg, *Asset, error) {
	var msg DecreaseLiquidityMsg
	if err := bridge.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if err := requireActive(conf); err != nil {
		return nil, nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Provider, "provider"); err != nil {
		return nil, nil, err
	}
	if msg.AssetID, err = resolveAsset(conf, msg.AssetID); err != nil {
		return nil, nil, err
	}
	asset, err := h.k.asset(db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	has, err := h.k.balance(db, msg.AssetID, msg.Provider)
	if err != nil {
		return nil, nil, err
	}
	if !has.IsGTE(msg.Amount) {
		return nil, nil, errors.Wrapf(ErrInsufficientLiquidity, "provider holds %s, requested %s", has, msg.Amount)
	}
	if err := h.k.requireFree(db, msg.AssetID, msg.Amount); err != nil {
		return nil, nil, err
	}
	return &msg, asset, nil
}
